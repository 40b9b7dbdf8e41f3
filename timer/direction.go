package timer

import (
	"fmt"
	"strings"
)

// Direction selects whether a timer counts up or down
type Direction uint8

const (
	Up Direction = iota
	Down
)

// String returns the lowercase direction name
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// ParseDirection accepts "up" or "down", case-insensitive
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	default:
		return Up, fmt.Errorf("%w: direction %q", ErrParse, s)
	}
}
