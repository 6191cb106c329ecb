package gesture

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Direction is a single cardinal swipe.
type Direction byte

const (
	// DirNone is the zero direction.
	DirNone Direction = 0
	// Left is a swipe toward negative x.
	Left Direction = 'l'
	// Right is a swipe toward positive x.
	Right Direction = 'r'
	// Up is a swipe toward negative y.
	Up Direction = 'u'
	// Down is a swipe toward positive y.
	Down Direction = 'd'
)

// String returns the single-character form of the direction.
func (d Direction) String() string {
	if d == DirNone {
		return ""
	}
	return string(rune(d))
}

// IsVertical reports whether d is Up or Down.
func (d Direction) IsVertical() bool {
	return d == Up || d == Down
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	switch d {
	case Left, Right, Up, Down:
		return true
	}
	return false
}

// Arrow returns a printable arrow for the direction.
func (d Direction) Arrow() string {
	switch d {
	case Left:
		return "←"
	case Right:
		return "→"
	case Up:
		return "↑"
	case Down:
		return "↓"
	}
	return ""
}

// Sequence is an ordered string of directions. The empty sequence is the
// initial and cancelled value.
type Sequence string

// ErrInvalidSequence is returned when a gesture string contains characters
// outside {l, r, u, d}.
var ErrInvalidSequence = errors.New("invalid gesture sequence")

// ParseSequence validates s as a gesture string.
func ParseSequence(s string) (Sequence, error) {
	s = strings.TrimSpace(s)
	for i := 0; i < len(s); i++ {
		if !Direction(s[i]).Valid() {
			return "", fmt.Errorf("%w: %q at offset %d", ErrInvalidSequence, s[i], i)
		}
	}
	return Sequence(s), nil
}

// Len returns the number of swipes.
func (s Sequence) Len() int {
	return len(s)
}

// First returns the first direction, or DirNone for an empty sequence.
func (s Sequence) First() Direction {
	if len(s) == 0 {
		return DirNone
	}
	return Direction(s[0])
}

// Last returns the last direction, or DirNone for an empty sequence.
func (s Sequence) Last() Direction {
	if len(s) == 0 {
		return DirNone
	}
	return Direction(s[len(s)-1])
}

// Append returns s with d added.
func (s Sequence) Append(d Direction) Sequence {
	return s + Sequence(d.String())
}

// HasPrefix reports whether s starts with prefix.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	return strings.HasPrefix(string(s), string(prefix))
}

// HasSuffix reports whether s ends with suffix.
func (s Sequence) HasSuffix(suffix Sequence) bool {
	return strings.HasSuffix(string(s), string(suffix))
}

// Arrows renders the sequence as arrows, e.g. "→↓".
func (s Sequence) Arrows() string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		b.WriteString(Direction(s[i]).Arrow())
	}
	return b.String()
}

// Point is a pointer position. Y grows downward as on screen.
type Point struct {
	X float64
	Y float64
}

// DistanceSquared returns the squared euclidean distance between p and q.
func (p Point) DistanceSquared(q Point) float64 {
	dx := q.X - p.X
	dy := q.Y - p.Y
	return dx*dx + dy*dy
}

// Quadrant boundaries in radians, y axis pointing down.
const (
	quarterPi      = math.Pi / 4
	threeQuarterPi = 3 * math.Pi / 4
)

// DirectionBetween buckets the angle from a to b into a cardinal
// direction. Boundaries sit at ±45° and ±135°.
func DirectionBetween(a, b Point) Direction {
	angle := math.Atan2(b.Y-a.Y, b.X-a.X)
	switch {
	case angle > -quarterPi && angle <= quarterPi:
		return Right
	case angle > quarterPi && angle <= threeQuarterPi:
		return Down
	case angle > -threeQuarterPi && angle <= -quarterPi:
		return Up
	default:
		return Left
	}
}
