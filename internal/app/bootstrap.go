package app

import (
	"fmt"

	"github.com/dshills/mindchord/internal/command"
	"github.com/dshills/mindchord/internal/commands"
	"github.com/dshills/mindchord/internal/config"
	"github.com/dshills/mindchord/internal/hint"
	"github.com/dshills/mindchord/internal/input/gesture"
	"github.com/dshills/mindchord/internal/multicursor"
	"github.com/dshills/mindchord/internal/palette"
	"github.com/dshills/mindchord/internal/plugin"
	"github.com/dshills/mindchord/internal/recent"
	"github.com/dshills/mindchord/internal/settings"
	"github.com/dshills/mindchord/internal/storage"
	"github.com/dshills/mindchord/internal/store"
	"github.com/dshills/mindchord/internal/term"
	"github.com/dshills/mindchord/internal/thought"
)

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config
	if app.opts.Config != nil {
		app.cfg = *app.opts.Config
	} else {
		cfg, err := config.Load(app.opts.ConfigPath)
		if err != nil {
			return &InitError{Component: "config", Err: err}
		}
		app.cfg = cfg
	}

	// 2. Logging
	if app.opts.Logger != nil {
		app.logger = app.opts.Logger
	} else {
		l, closer, err := openLog(app.cfg.Log)
		if err != nil {
			return &InitError{Component: "log", Err: err}
		}
		app.logger, app.logFile = l, closer
	}

	// 3. Storage and what lives in it
	if err := app.openStorage(); err != nil {
		return err
	}

	// 4. Store over the saved document
	tree, err := loadDocument(app.kv, app.logger)
	if err != nil {
		return &InitError{Component: "document", Err: err}
	}
	initial := store.NewState(tree)
	if children := tree.Children(thought.Root); len(children) > 0 {
		initial.Cursor = thought.Path{children[0]}
	}
	app.store = store.New(initial, store.WithLogger(app.logger))
	app.doc = newDocument(app.kv, tree, app.logger)
	app.store.Subscribe(app.doc.onState)

	// 5. Commands: built-ins first so their chords win collisions
	app.plugins = plugin.New(
		plugin.WithLogger(app.logger),
		plugin.WithKnownActions(app.store.Known),
	)
	all := commands.Builtins(app.env())
	all = append(all, app.plugins.LoadAll(app.cfg.Plugins.Paths)...)
	app.registry = command.NewRegistry(all, command.WithLogger(app.logger))
	app.resolver = command.NewResolver(app.registry,
		command.WithCheatsheet(commands.IDCheatsheet),
		command.WithPaletteOpen(func() bool { return app.store.State().PaletteOpen }),
	)

	// 6. Execution surfaces
	app.executor = multicursor.NewExecutor(app.store,
		multicursor.WithLogger(app.logger),
		multicursor.WithRegistry(app.registry),
	)
	paletteOpts := []palette.Option{palette.WithLogger(app.logger)}
	if app.recent != nil {
		paletteOpts = append(paletteOpts, palette.WithRecent(app.recent))
	}
	app.palette = palette.New(app.registry, app.store, app.executor, paletteOpts...)

	// 7. Hints and the recognizer that drives them
	app.hintView = term.NewHintView(nil)
	hintOpts := []hint.Option{
		hint.WithPost(app.post),
		hint.WithTraining(app.settings.Training),
		hint.WithLogger(app.logger),
	}
	if app.recent != nil {
		hintOpts = append(hintOpts, hint.WithRecorder(app.recent))
	}
	if app.opts.Scheduler != nil {
		hintOpts = append(hintOpts, hint.WithScheduler(app.opts.Scheduler))
	}
	app.hints = hint.New(hintConfig(app.cfg.Hint), app.resolver, app.executor, app.hintView, hintOpts...)

	app.recognizer = gesture.NewRecognizer(
		gesture.Config{
			MinDistance:     app.cfg.Gesture.MinDistance,
			ScrollThreshold: app.cfg.Gesture.ScrollThreshold,
		},
		gesture.Handlers{
			OnStart:  app.hints.OnStart,
			OnSwipe:  app.hints.OnSwipe,
			OnEnd:    func(seq gesture.Sequence, ev any) { app.hints.OnRelease(seq, ev) },
			OnCancel: app.hints.Cancel,
			// A drag that begins while the palette is open belongs to it.
			ShouldCancel: func() bool { return app.store.State().PaletteOpen },
		},
		gesture.WithLogger(app.logger),
	)

	app.logger.Info("started with %d commands", app.registry.Len())
	return nil
}

func (app *Application) openStorage() error {
	app.kv = app.opts.Storage
	if app.kv == nil {
		if app.cfg.Storage.Dir == "" {
			return &InitError{Component: "storage", Err: errNoStorage}
		}
		disk, err := storage.OpenDisk(app.cfg.Storage.Dir)
		if err != nil {
			return &InitError{Component: "storage", Err: err}
		}
		app.kv = disk
	}

	st, err := settings.Load(app.kv, app.cfg.Hint.TrainingMode)
	if err != nil {
		return &InitError{Component: "settings", Err: err}
	}
	app.settings = st

	if app.cfg.Recent.Enabled {
		r, err := recent.Load(app.kv,
			recent.WithMax(app.cfg.Recent.Max),
			recent.WithLogger(app.logger),
		)
		if err != nil {
			return &InitError{Component: "recent", Err: fmt.Errorf("load recent commands: %w", err)}
		}
		app.recent = r
	}
	return nil
}
