// Package termwrap wraps report text to the width of the attached terminal.
package termwrap

import (
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"golang.org/x/term"
)

type TermWrap struct {
	width  int
	height int
}

// NewTermWrap measures the terminal on fd, using the defaults when fd is not
// a terminal.
func NewTermWrap(fd int, defaultWidth, defaultHeight int) *TermWrap {
	var err error
	tw := &TermWrap{}

	tw.width, tw.height, err = term.GetSize(fd)
	if err != nil || tw.width <= 0 {
		tw.width = defaultWidth
		tw.height = defaultHeight
	}

	return tw
}

// Width is the number of columns text is wrapped to.
func (tw *TermWrap) Width() int {
	return tw.width
}

func (tw *TermWrap) Paragraph(content string) string {
	return wordwrap.WrapString(content, uint(tw.width))
}

// IndentedParagraph wraps content so that, with prefix added to every line,
// it still fits the terminal. Narrow terminals (at or below minimumWidth) are
// wrapped without accounting for the prefix.
func (tw *TermWrap) IndentedParagraph(prefix, content string, minimumWidth int) string {
	width := tw.width
	if width > minimumWidth {
		width -= len(prefix)
	}

	lines := strings.Split(wordwrap.WrapString(content, uint(width)), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}

	return strings.Join(lines, "\n") + "\n"
}
