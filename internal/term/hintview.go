package term

import (
	"sync"

	"github.com/dshills/mindchord/internal/command"
	"github.com/dshills/mindchord/internal/hint"
	"github.com/dshills/mindchord/internal/input/gesture"
)

// HintState is what the hint overlay shows.
type HintState struct {
	Level      hint.Level
	Label      string
	Sequence   gesture.Sequence
	Candidates []*command.Command
}

// HintView records hint updates for the next draw. It implements
// hint.Display.
type HintView struct {
	mu       sync.Mutex
	state    HintState
	onChange func()
}

// NewHintView creates a view that calls onChange after every update.
func NewHintView(onChange func()) *HintView {
	return &HintView{onChange: onChange}
}

// ShowBasic shows a single label.
func (v *HintView) ShowBasic(label string, seq gesture.Sequence) {
	v.set(HintState{Level: hint.Basic, Label: label, Sequence: seq})
}

// ShowExtended shows the completion menu.
func (v *HintView) ShowExtended(seq gesture.Sequence, candidates []*command.Command) {
	v.set(HintState{Level: hint.Extended, Sequence: seq, Candidates: candidates})
}

// Clear hides the hint.
func (v *HintView) Clear() {
	v.set(HintState{})
}

// State returns the current hint.
func (v *HintView) State() HintState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *HintView) set(s HintState) {
	v.mu.Lock()
	v.state = s
	fn := v.onChange
	v.mu.Unlock()
	if fn != nil {
		fn()
	}
}
