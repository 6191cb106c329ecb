package app

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/mindchord/internal/config"
	"github.com/dshills/mindchord/internal/term"
)

// Run drives the terminal until Ctrl+Q or ctx is cancelled. It blocks.
func (app *Application) Run(ctx context.Context, screen tcell.Screen) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	scr := term.NewScreen(screen, term.NewTheme(app.cfg.Hint.Color))
	if err := scr.Init(); err != nil {
		return &InitError{Component: "screen", Err: err}
	}
	defer scr.Fini()

	app.setPost(scr.Post)
	defer app.setPost(nil)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if app.opts.ConfigPath != "" {
		w := config.NewWatcher(app.opts.ConfigPath,
			config.WithWatchLogger(app.logger),
		)
		w.OnChange(func(cfg config.Config) {
			scr.Post(func() {
				app.ApplyConfig(cfg)
				scr.SetTheme(term.NewTheme(cfg.Hint.Color))
			})
		})
		go func() {
			if err := w.Run(ctx); err != nil {
				app.logger.Warn("config watcher stopped: %v", err)
			}
		}()
	}

	// Wake PollEvent once the context ends.
	go func() {
		<-ctx.Done()
		scr.Post(func() {})
	}()

	pointer := term.NewPointer(app.recognizer)
	for {
		scr.Draw(app.view())

		ev := scr.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			scr.Sync()
		case *tcell.EventKey:
			kev, ok := term.KeyEvent(ev)
			if !ok {
				continue
			}
			if err := app.HandleKey(kev); errors.Is(err, ErrQuit) {
				return nil
			}
		case *tcell.EventMouse:
			res := pointer.Handle(ev)
			switch {
			case res.Click:
				app.Click(scr.PathAt(res.Y))
			case res.Scroll != 0:
				scr.ScrollBy(res.Scroll)
			}
		case *tcell.EventInterrupt:
			if fn, ok := ev.Data().(func()); ok {
				fn()
			}
		}
	}
}

// view snapshots everything the next frame shows.
func (app *Application) view() term.View {
	st := app.store.State()
	v := term.View{
		State: st,
		Hint:  app.hintView.State(),
	}
	if st.PaletteOpen {
		v.Palette = &term.PaletteView{
			Query:    app.palette.Query(),
			Results:  app.palette.Results(),
			Selected: app.palette.Selected(),
		}
	}
	if st.CheatsheetOpen {
		v.Cheatsheet = app.Cheatsheet()
	}
	return v
}
