// Package menu drives the interactive text session: pick a year, analyze its
// logos, then look brands up by rank or name until the user exits.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/BitPonyLLC/logohue/pkg/corpus"
	"github.com/BitPonyLLC/logohue/pkg/ranking"

	"github.com/mattn/go-shellwords"
	"github.com/rs/zerolog"
)

// Analyzer classifies the logos of the given year's ranking.
type Analyzer func(ctx context.Context, year int) (*corpus.Store, error)

// Reporter presents the results of a finished analysis.
type Reporter func(w io.Writer, year int, store *corpus.Store) error

// Menu is a state machine fed by lines of user input.
type Menu struct {
	Years   ranking.Years
	Analyze Analyzer
	Report  Reporter

	In  io.Reader
	Out io.Writer

	state   State
	year    int
	store   *corpus.Store
	pending []string
	scanner *bufio.Scanner
	log     *zerolog.Logger
}

const separator = "--------------------------------------------------"

// State returns the current state.
func (m *Menu) State() State {
	return m.state
}

// Store returns the results of the most recent analysis, if any.
func (m *Menu) Store() *corpus.Store {
	return m.store
}

// Run starts in SelectYear and blocks until Exit is reached, the input ends,
// or ctx is canceled.
func (m *Menu) Run(ctx context.Context, log *zerolog.Logger) error {
	m.log = log
	m.state = SelectYear
	m.scanner = bufio.NewScanner(m.In)

	fmt.Fprintln(m.Out, "This program analyses the colours of logos used by the most valuable brands")

	for m.state != Exit {
		if ctx.Err() != nil {
			m.transition(Exit)
			break
		}

		next, err := m.step(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				m.transition(Exit)
				break
			}
			return err
		}

		m.transition(next)
	}

	return nil
}

//--------------------------------------------------------------------------------
// private

func (m *Menu) transition(next State) {
	if next != m.state {
		m.log.Debug().Str("from", m.state.String()).Str("to", next.String()).Msg("transition")
	}
	m.state = next
}

func (m *Menu) step(ctx context.Context) (State, error) {
	switch m.state {
	case SelectYear:
		return m.selectYear()
	case Processing:
		return m.process(ctx)
	case MenuIdle:
		return m.idle()
	case LookupByRank:
		return m.lookupByRank()
	case LookupByName:
		return m.lookupByName()
	}
	return Exit, nil
}

func (m *Menu) selectYear() (State, error) {
	fmt.Fprintln(m.Out, separator)
	fmt.Fprintln(m.Out, "Start by selecting what year you're interested in?")
	for year := m.Years.Max; year >= m.Years.Min; year-- {
		fmt.Fprintf(m.Out, "  %d\n", year)
	}

	for {
		args, err := m.prompt("Enter the year: ")
		if err != nil {
			return Exit, err
		}

		year, err := strconv.Atoi(strings.Join(args, " "))
		if err == nil && m.Years.Contains(year) {
			m.year = year
			return Processing, nil
		}

		fmt.Fprintf(m.Out, "You selected: %s\n", strings.Join(args, " "))
	}
}

func (m *Menu) process(ctx context.Context) (State, error) {
	fmt.Fprintln(m.Out, separator)
	fmt.Fprintln(m.Out, "Please hold on while the program analyses each logo pixel by pixel")

	store, err := m.Analyze(ctx, m.year)
	if err != nil {
		m.log.Err(err).Int("year", m.year).Msg("analysis failed")
		fmt.Fprintf(m.Out, "Unable to analyse %d: %v\n", m.year, err)
		if ctx.Err() != nil {
			return Exit, nil
		}
		return SelectYear, nil
	}

	m.store = store
	if m.Report != nil {
		err = m.Report(m.Out, m.year, store)
		if err != nil {
			return Exit, err
		}
	}

	return MenuIdle, nil
}

func (m *Menu) idle() (State, error) {
	fmt.Fprintln(m.Out, separator)
	showItems(m.Out)

	for {
		args, err := m.prompt(fmt.Sprintf("Enter your selection (1-%d): ", len(items)))
		if err != nil {
			return Exit, err
		}

		if len(args) > 0 {
			if it, ok := findItem(args[0]); ok {
				// allow "1 12" or "2 Apple" as a shortcut
				m.pending = args[1:]
				return it.next, nil
			}
		}

		fmt.Fprintf(m.Out, "You selected: %s\n", strings.Join(args, " "))
	}
}

func (m *Menu) lookupByRank() (State, error) {
	for {
		args, err := m.prompt(fmt.Sprintf("Enter your rank selection (1-%d): ", m.store.Len()))
		if err != nil {
			return Exit, err
		}

		input := strings.Join(args, " ")
		rank, err := strconv.Atoi(input)
		if err == nil {
			entry, err := m.store.LookupByRank(rank)
			if err == nil {
				fmt.Fprintln(m.Out, separator)
				fmt.Fprintf(m.Out, "The number %d most valuable brand in the world is: %s\n", entry.Rank, entry.Brand)
				m.describe(entry)
				return MenuIdle, nil
			}
		}

		fmt.Fprintf(m.Out, "You selected: %s\n", input)
	}
}

func (m *Menu) lookupByName() (State, error) {
	for {
		args, err := m.prompt("Enter your brand name here (eg. Apple): ")
		if err != nil {
			return Exit, err
		}

		name := strings.Join(args, " ")
		entry, err := m.store.LookupByName(name)
		if err == nil {
			fmt.Fprintln(m.Out, separator)
			fmt.Fprintf(m.Out, "%s rank in the %d most valuable brands in the world is: %d\n", entry.Brand, m.store.Len(), entry.Rank)
			m.describe(entry)
			return MenuIdle, nil
		}

		fmt.Fprintf(m.Out, "We couldn't find %s.\nMake sure your spelling is correct\n", name)
	}
}

func (m *Menu) describe(entry corpus.Entry) {
	if entry.Err != nil {
		fmt.Fprintf(m.Out, "The logo could not be analysed: %v\n", entry.Err)
		return
	}

	fmt.Fprintf(m.Out, "The dominant colour identified by the programme is: %s\n", entry.Result.Category)
	if entry.Prominent != "" {
		fmt.Fprintf(m.Out, "Its most prominent shade is #%s\n", entry.Prominent)
	}
}

// prompt consumes pending shortcut arguments first, then reads one line.
func (m *Menu) prompt(msg string) ([]string, error) {
	if len(m.pending) > 0 {
		args := m.pending
		m.pending = nil
		return args, nil
	}

	fmt.Fprint(m.Out, msg)
	if !m.scanner.Scan() {
		err := m.scanner.Err()
		if err == nil {
			err = io.EOF
		}
		return nil, err
	}

	line := strings.TrimSpace(m.scanner.Text())
	args, err := shellwords.Parse(line)
	if err != nil {
		m.log.Debug().Err(err).Str("line", line).Msg("unable to parse input")
		return []string{line}, nil
	}

	return args, nil
}
