package domain

import "fmt"

// RunState is the scheduler phase.
type RunState int

const (
	StatePre RunState = iota
	StateWaiting
	StatePlayer
	StateMonster
	StateGameOver
)

var runStateNames = map[RunState]string{
	StatePre:      "pre",
	StateWaiting:  "waiting",
	StatePlayer:   "player",
	StateMonster:  "monster",
	StateGameOver: "game_over",
}

var runStateValues = map[string]RunState{
	"pre":       StatePre,
	"waiting":   StateWaiting,
	"player":    StatePlayer,
	"monster":   StateMonster,
	"game_over": StateGameOver,
}

func (s RunState) String() string {
	if name, ok := runStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("RunState(%d)", int(s))
}

// ParseRunState is the inverse of String.
func ParseRunState(s string) (RunState, error) {
	if v, ok := runStateValues[s]; ok {
		return v, nil
	}
	return StatePre, fmt.Errorf("unknown run state %q", s)
}

// RunsPipeline reports whether the simulation systems execute in this state.
func (s RunState) RunsPipeline() bool {
	return s == StatePre || s == StatePlayer || s == StateMonster
}

// Terminal states never transition again.
func (s RunState) Terminal() bool {
	return s == StateGameOver
}

func (s RunState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *RunState) UnmarshalText(b []byte) error {
	v, err := ParseRunState(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
