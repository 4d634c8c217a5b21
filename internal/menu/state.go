package menu

import "fmt"

// State is a step of the interactive session.
type State int

const (
	SelectYear State = iota
	Processing
	MenuIdle
	LookupByRank
	LookupByName
	Exit
)

var stateNames = []string{"select-year", "processing", "menu", "lookup-rank", "lookup-name", "exit"}

func (s State) String() string {
	if s < SelectYear || s > Exit {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}
