package game

import (
	"fmt"
	"strings"
)

// Action is a player decision during their turn.
type Action string

const (
	ActionHit    Action = "HIT"
	ActionStand  Action = "STAND"
	ActionDouble Action = "DOUBLE"
	ActionSplit  Action = "SPLIT"
)

// ParseAction maps user input to an Action. Matching is
// case-insensitive, surrounding whitespace is ignored and the
// single-letter shorthands h, s, d and p are accepted.
func ParseAction(input string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "h", "hit":
		return ActionHit, nil
	case "s", "stand":
		return ActionStand, nil
	case "d", "double":
		return ActionDouble, nil
	case "p", "split":
		return ActionSplit, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, input)
}
