package termwrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultsWhenNotATerminal(t *testing.T) {
	tw := NewTermWrap(-1, 20, 10)
	assert.Equal(t, 20, tw.Width())
	assert.Equal(t, "one two three four\nfive six", tw.Paragraph("one two three four five six"))
}

func TestIndentedParagraph(t *testing.T) {
	tw := NewTermWrap(-1, 16, 10)
	assert.Equal(t, "  one two three\n  four five\n", tw.IndentedParagraph("  ", "one two three four five", 10))
}
