// Package palette implements the command palette: a fuzzy-searchable list
// of commands that runs the chosen one with the commandPalette invocation.
package palette

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/dshills/mindchord/internal/command"
	"github.com/dshills/mindchord/internal/logging"
	"github.com/dshills/mindchord/internal/store"
)

// DefaultLimit caps the visible results.
const DefaultLimit = 12

// Palette errors.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrNoSelection    = errors.New("no command selected")
)

// Store is the store surface the palette uses.
type Store interface {
	Dispatch(items ...store.Dispatchable)
	State() *store.State
}

// Executor runs a command across the current cursors.
type Executor interface {
	Execute(cmd *command.Command, ev any, t command.InvocationType)
}

// Recent ranks and records recently used commands.
type Recent interface {
	Rank(id string) int
	Add(id string) error
}

// Result is a matched command.
type Result struct {
	Command *command.Command
	// Score is higher for better matches.
	Score int
	// Matches holds byte offsets of matched characters in the label.
	Matches []int
}

// Option configures a Palette.
type Option func(*Palette)

// WithRecent boosts and records recently used commands.
func WithRecent(r Recent) Option {
	return func(p *Palette) {
		p.recent = r
	}
}

// WithLimit sets the result cap.
func WithLimit(n int) Option {
	return func(p *Palette) {
		if n > 0 {
			p.limit = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(p *Palette) {
		p.logger = logging.OrNop(l).WithComponent("palette")
	}
}

// Palette holds the query and selection of the open palette. Whether it
// is open lives in the store so the resolver can see it.
type Palette struct {
	reg    *command.Registry
	store  Store
	exec   Executor
	recent Recent
	limit  int
	logger *logging.Logger

	mu       sync.Mutex
	commands []*command.Command
	query    string
	results  []Result
	selected int
}

// New creates a palette over the registry's commands not hidden from it.
func New(reg *command.Registry, s Store, e Executor, opts ...Option) *Palette {
	p := &Palette{
		reg:    reg,
		store:  s,
		exec:   e,
		limit:  DefaultLimit,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	for _, c := range reg.Commands() {
		// Commands shadowed by an earlier duplicate id are not reachable.
		if c.HideFromPalette || reg.ByID(c.ID) != c {
			continue
		}
		p.commands = append(p.commands, c)
	}
	return p
}

// IsOpen reports whether the palette is shown.
func (p *Palette) IsOpen() bool {
	return p.store.State().PaletteOpen
}

// Open shows the palette with an empty query.
func (p *Palette) Open() {
	p.mu.Lock()
	p.query = ""
	p.results = p.search("")
	p.selected = 0
	p.mu.Unlock()
	p.store.Dispatch(store.NewAction(store.ActionSetPaletteOpen, store.Args{Flag: true}))
}

// Close hides the palette.
func (p *Palette) Close() {
	p.store.Dispatch(store.NewAction(store.ActionSetPaletteOpen, store.Args{Flag: false}))
}

// Query returns the current query.
func (p *Palette) Query() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

// SetQuery replaces the query and resets the selection.
func (p *Palette) SetQuery(q string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.query = q
	p.results = p.search(q)
	p.selected = 0
}

// Type appends r to the query.
func (p *Palette) Type(r rune) {
	p.SetQuery(p.Query() + string(r))
}

// Backspace removes the last rune of the query.
func (p *Palette) Backspace() {
	q := []rune(p.Query())
	if len(q) == 0 {
		return
	}
	p.SetQuery(string(q[:len(q)-1]))
}

// Results returns the matches for the current query.
func (p *Palette) Results() []Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Result(nil), p.results...)
}

// Selected returns the highlighted index.
func (p *Palette) Selected() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected
}

// Move shifts the selection by delta, wrapping around.
func (p *Palette) Move(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.results)
	if n == 0 {
		return
	}
	p.selected = ((p.selected+delta)%n + n) % n
}

// Accept closes the palette and runs the highlighted command.
func (p *Palette) Accept(ev any) error {
	p.mu.Lock()
	if p.selected >= len(p.results) {
		p.mu.Unlock()
		return ErrNoSelection
	}
	cmd := p.results[p.selected].Command
	p.mu.Unlock()
	return p.run(cmd, ev)
}

// Run closes the palette and runs the command with the given id.
func (p *Palette) Run(id string, ev any) error {
	cmd := p.reg.ByID(id)
	if cmd == nil || cmd.HideFromPalette {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, id)
	}
	return p.run(cmd, ev)
}

func (p *Palette) run(cmd *command.Command, ev any) error {
	// Close first so the command sees the document, not the palette.
	p.Close()
	p.exec.Execute(cmd, ev, command.CommandPalette)
	if p.recent != nil {
		if err := p.recent.Add(cmd.ID); err != nil {
			p.logger.Error("recording %s: %v", cmd.ID, err)
		}
	}
	return nil
}

// Search matches query against command labels. Recently used commands are
// boosted. An empty query lists recent commands first, then the rest by
// label.
func (p *Palette) Search(query string) []Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.search(query)
}

type labels []*command.Command

func (l labels) String(i int) string { return l[i].Label }
func (l labels) Len() int            { return len(l) }

func (p *Palette) search(query string) []Result {
	var results []Result
	if query == "" {
		results = make([]Result, 0, len(p.commands))
		for _, c := range p.commands {
			score := 0
			if pos := p.rank(c.ID); pos >= 0 {
				score = 1000 - pos
			}
			results = append(results, Result{Command: c, Score: score})
		}
	} else {
		for _, m := range fuzzy.FindFrom(query, labels(p.commands)) {
			r := Result{Command: p.commands[m.Index], Score: m.Score, Matches: m.MatchedIndexes}
			if pos := p.rank(r.Command.ID); pos >= 0 {
				r.Score += 100 - pos
			}
			results = append(results, r)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Command.Label < results[j].Command.Label
	})
	if len(results) > p.limit {
		results = results[:p.limit]
	}
	return results
}

func (p *Palette) rank(id string) int {
	if p.recent == nil {
		return -1
	}
	return p.recent.Rank(id)
}
