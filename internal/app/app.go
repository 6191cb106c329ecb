// Package app wires the command engine together and runs the terminal
// event loop.
package app

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/dshills/mindchord/internal/command"
	"github.com/dshills/mindchord/internal/commands"
	"github.com/dshills/mindchord/internal/config"
	"github.com/dshills/mindchord/internal/hint"
	"github.com/dshills/mindchord/internal/input/gesture"
	"github.com/dshills/mindchord/internal/logging"
	"github.com/dshills/mindchord/internal/multicursor"
	"github.com/dshills/mindchord/internal/palette"
	"github.com/dshills/mindchord/internal/plugin"
	"github.com/dshills/mindchord/internal/recent"
	"github.com/dshills/mindchord/internal/settings"
	"github.com/dshills/mindchord/internal/storage"
	"github.com/dshills/mindchord/internal/store"
	"github.com/dshills/mindchord/internal/term"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the TOML file to load and watch while running. Empty
	// uses the built-in defaults and disables watching.
	ConfigPath string

	// Config, when set, is used instead of loading ConfigPath. The file is
	// still watched.
	Config *config.Config

	// Storage replaces the disk store under Config.Storage.Dir.
	Storage storage.KV

	// Logger replaces the logger built from Config.Log.
	Logger *logging.Logger

	// Scheduler replaces the hint timers.
	Scheduler hint.Scheduler
}

// Application owns every component of the engine.
type Application struct {
	opts Options
	cfg  config.Config

	logger  *logging.Logger
	logFile io.Closer

	kv       storage.KV
	recent   *recent.List
	settings *settings.Settings
	plugins  *plugin.Host
	doc      *document

	store      *store.Store
	registry   *command.Registry
	resolver   *command.Resolver
	executor   *multicursor.Executor
	palette    *palette.Palette
	hintView   *term.HintView
	hints      *hint.Coordinator
	recognizer *gesture.Recognizer

	mu     sync.Mutex
	postFn func(func())

	running atomic.Bool
}

// New loads configuration and persisted state and builds every component.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}
	if err := app.bootstrap(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// Close releases plugin and log resources.
func (app *Application) Close() {
	if app.plugins != nil {
		app.plugins.Close()
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
		app.logFile = nil
	}
}

// post runs fn on the event loop when one is running, otherwise directly.
func (app *Application) post(fn func()) {
	app.mu.Lock()
	p := app.postFn
	app.mu.Unlock()
	if p == nil {
		fn()
		return
	}
	p(fn)
}

func (app *Application) setPost(p func(func())) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.postFn = p
}

// ApplyConfig updates the settings that can change at runtime. Command
// indices are not rebuilt.
func (app *Application) ApplyConfig(cfg config.Config) {
	app.cfg = cfg
	app.logger.SetLevel(cfg.Log.Level)
	app.recognizer.SetConfig(gesture.Config{
		MinDistance:     cfg.Gesture.MinDistance,
		ScrollThreshold: cfg.Gesture.ScrollThreshold,
	})
	app.hints.SetConfig(hintConfig(cfg.Hint))
	app.logger.Info("configuration reloaded")
}

func hintConfig(c config.HintConfig) hint.Config {
	return hint.Config{
		PromotionDelay: c.PromotionDelay,
		DowngradeDelay: c.DowngradeDelay,
		CancelLabel:    c.CancelLabel,
	}
}

// Config returns the active configuration.
func (app *Application) Config() config.Config { return app.cfg }

// Store returns the state store.
func (app *Application) Store() *store.Store { return app.store }

// Registry returns the command registry.
func (app *Application) Registry() *command.Registry { return app.registry }

// Resolver returns the command resolver.
func (app *Application) Resolver() *command.Resolver { return app.resolver }

// Palette returns the command palette.
func (app *Application) Palette() *palette.Palette { return app.palette }

// Recognizer returns the pointer gesture recognizer.
func (app *Application) Recognizer() *gesture.Recognizer { return app.recognizer }

// Hint returns the hint currently displayed.
func (app *Application) Hint() term.HintState { return app.hintView.State() }

// Recent returns the recently used command ids, most recent first.
func (app *Application) Recent() []string {
	if app.recent == nil {
		return nil
	}
	return app.recent.IDs()
}

// Training reports whether training mode is on.
func (app *Application) Training() bool { return app.settings.Training() }

// Cheatsheet lists the gesture commands shown in help.
func (app *Application) Cheatsheet() []*command.Command {
	return app.resolver.Candidates("")
}

// IsRunning reports whether the event loop is running.
func (app *Application) IsRunning() bool { return app.running.Load() }

func (app *Application) toggleTraining() (bool, error) {
	on, err := app.settings.ToggleTraining()
	if err != nil {
		app.logger.Error("saving training mode: %v", err)
	}
	return on, err
}

func (app *Application) openPalette() {
	app.palette.Open()
}

func (app *Application) record(id string) {
	if app.recent == nil {
		return
	}
	if err := app.recent.Add(id); err != nil {
		app.logger.Error("recording recent command: %v", err)
	}
}

var errNoStorage = errors.New("no storage directory configured")

func (app *Application) env() *commands.Env {
	return &commands.Env{
		OpenPalette:    app.openPalette,
		ToggleTraining: app.toggleTraining,
		Training:       app.Training,
	}
}
