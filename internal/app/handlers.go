package app

import (
	"errors"

	"github.com/dshills/mindchord/internal/command"
	"github.com/dshills/mindchord/internal/input/key"
	"github.com/dshills/mindchord/internal/palette"
	"github.com/dshills/mindchord/internal/store"
	"github.com/dshills/mindchord/internal/thought"
)

// HandleKey routes one key press. It returns ErrQuit for Ctrl+Q.
func (app *Application) HandleKey(ev key.Event) error {
	if ev.Modifiers.HasCtrl() && ev.Key == key.KeyRune && ev.Rune == 'q' {
		return ErrQuit
	}

	if app.store.State().Alert != "" {
		app.store.Dispatch(store.NewAction(store.ActionClearAlert, store.Args{}))
	}

	if app.palette.IsOpen() {
		app.paletteKey(ev)
		return nil
	}
	if ev.Key == key.KeyEscape && app.store.State().CheatsheetOpen {
		app.closeCheatsheet()
		return nil
	}

	cmd := app.resolver.ResolveChord(ev.Chord())
	if cmd == nil {
		app.logger.Debug("unbound key %s", ev)
		return nil
	}
	app.hints.Cancel()
	app.executor.Execute(cmd, ev, command.Keyboard)
	app.record(cmd.ID)
	return nil
}

// paletteKey edits the palette query or runs the selection.
func (app *Application) paletteKey(ev key.Event) {
	p := app.palette
	switch {
	case ev.Key == key.KeyEscape:
		p.Close()
	case ev.Key == key.KeyEnter:
		if err := p.Accept(ev); err != nil && !errors.Is(err, palette.ErrNoSelection) {
			app.logger.Error("palette: %v", err)
		}
	case ev.Key == key.KeyUp, ev.Key == key.KeyTab && ev.Modifiers.HasShift():
		p.Move(-1)
	case ev.Key == key.KeyDown, ev.Key == key.KeyTab:
		p.Move(1)
	case ev.Key == key.KeyBackspace:
		p.Backspace()
	case ev.Key == key.KeySpace && ev.Modifiers == key.ModNone:
		p.Type(' ')
	case ev.IsRune() && !ev.Modifiers.HasCtrl() && !ev.Modifiers.HasMeta():
		p.Type(ev.Rune)
	}
}

// Click focuses the thought at p. A click while an overlay is open only
// closes the overlay.
func (app *Application) Click(p thought.Path, ok bool) {
	if app.palette.IsOpen() {
		app.palette.Close()
		return
	}
	if app.store.State().CheatsheetOpen {
		app.closeCheatsheet()
		return
	}
	if !ok {
		return
	}
	app.store.Dispatch(store.SetCursor(p))
}

func (app *Application) closeCheatsheet() {
	app.store.Dispatch(store.NewAction(store.ActionSetCheatsheetOpen, store.Args{Flag: false}))
}
