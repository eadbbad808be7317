package domain

import (
	"errors"
	"strings"
	"time"
)

// InterestEvent is a directional "like" from one profile to another.
// Events are immutable once appended.
type InterestEvent struct {
	From      ProfileID
	To        ProfileID
	Timestamp time.Time
}

// Direction is the caller's decision on the profile under the cursor.
type Direction int

const (
	DirectionPass Direction = iota + 1
	DirectionLike
)

// ErrInvalidDirection is returned when a decision is neither like nor pass.
var ErrInvalidDirection = errors.New("invalid swipe direction")

// ParseDirection accepts "like"/"right" and "pass"/"left".
func ParseDirection(raw string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "like", "right":
		return DirectionLike, nil
	case "pass", "left":
		return DirectionPass, nil
	}
	return 0, ErrInvalidDirection
}

func (d Direction) Valid() bool {
	return d == DirectionLike || d == DirectionPass
}

func (d Direction) String() string {
	switch d {
	case DirectionLike:
		return "like"
	case DirectionPass:
		return "pass"
	}
	return "unknown"
}
