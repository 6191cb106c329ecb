package command

import (
	"github.com/dshills/mindchord/internal/input/gesture"
)

// ChainCommand synthesizes the command produced by following first with
// second in one gesture. When second's gesture starts with the direction
// first's gesture ends with, the shared swipe appears once.
//
// The result carries every field of second except Gestures and Label, and
// remembers first as its Source. Neither input is modified. Resolver
// replaces the joined gesture with the sequence actually drawn, which
// differs when second was matched through an alias.
func ChainCommand(first, second *Command) *Command {
	a, b := first.Gesture(), second.Gesture()
	if a.Len() > 0 && b.Len() > 0 && b.First() == a.Last() {
		b = b[1:]
	}

	chained := *second
	chained.Gestures = []gesture.Sequence{a + b}
	chained.Label = first.Label + " + " + second.Label
	chained.InverseLabel = ""
	chained.Source = first
	return &chained
}
