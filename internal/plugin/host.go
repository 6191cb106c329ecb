package plugin

import (
	"fmt"
	"os"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/mindchord/internal/command"
	"github.com/dshills/mindchord/internal/logging"
	"github.com/dshills/mindchord/internal/store"
)

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(h *Host) {
		h.logger = logging.OrNop(l).WithComponent("plugin")
	}
}

// WithKnownActions restricts ctx.dispatch to actions for which known
// returns true. Typically store.Store.Known.
func WithKnownActions(known func(name string) bool) Option {
	return func(h *Host) {
		h.known = known
	}
}

// WithTimeout bounds each script call.
func WithTimeout(d time.Duration) Option {
	return func(h *Host) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// Host owns the Lua state shared by every loaded script.
type Host struct {
	st      *state
	logger  *logging.Logger
	known   func(string) bool
	timeout time.Duration

	// pending collects declarations while a script loads. Only touched
	// with st.mu held.
	pending []*command.Command
	ids     map[string]bool
}

// New creates a host with an empty sandbox.
func New(opts ...Option) *Host {
	h := &Host{
		logger:  logging.Nop(),
		timeout: DefaultExecutionTimeout,
		ids:     make(map[string]bool),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.st = newState(h.timeout)
	h.st.L.SetGlobal("command", h.st.L.NewFunction(h.declare))
	return h
}

// Close releases the Lua state. Commands loaded from it stop working.
func (h *Host) Close() {
	h.st.close()
}

// LoadFile runs a script and returns the commands it declared. A script
// that fails contributes no commands.
func (h *Host) LoadFile(path string) ([]*command.Command, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return h.LoadString(path, string(src))
}

// LoadString runs script source. name identifies it in errors.
func (h *Host) LoadString(name, src string) ([]*command.Command, error) {
	var cmds []*command.Command
	err := h.st.do(func(L *lua.LState) error {
		h.pending = nil
		defer func() { h.pending = nil }()
		fn, err := L.LoadString(src)
		if err != nil {
			return err
		}
		L.Push(fn)
		if err := L.PCall(0, 0, nil); err != nil {
			return err
		}
		cmds = h.pending
		for _, c := range cmds {
			h.ids[c.ID] = true
		}
		return nil
	})
	if err != nil {
		return nil, &LoadError{Path: name, Err: err}
	}
	h.logger.Info("loaded %d command(s) from %s", len(cmds), name)
	return cmds, nil
}

// LoadAll loads every path. Failures are logged and skipped.
func (h *Host) LoadAll(paths []string) []*command.Command {
	var all []*command.Command
	for _, p := range paths {
		cmds, err := h.LoadFile(p)
		if err != nil {
			h.logger.Error("%v", err)
			continue
		}
		all = append(all, cmds...)
	}
	return all
}

// declare implements the Lua command{...} function.
func (h *Host) declare(L *lua.LState) int {
	tbl := L.CheckTable(1)
	cmd, err := h.parseDecl(L, tbl)
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	if h.ids[cmd.ID] {
		L.RaiseError("%v: duplicate id %q", ErrInvalidCommand, cmd.ID)
		return 0
	}
	for _, c := range h.pending {
		if c.ID == cmd.ID {
			L.RaiseError("%v: duplicate id %q", ErrInvalidCommand, cmd.ID)
			return 0
		}
	}
	h.pending = append(h.pending, cmd)
	return 0
}

// execFunc adapts a Lua function to command.ExecFunc.
func (h *Host) execFunc(id string, fn *lua.LFunction) command.ExecFunc {
	return func(dispatch store.DispatchFunc, getState store.GetStateFunc, _ any, t command.InvocationType) {
		err := h.st.do(func(L *lua.LState) error {
			ctx := h.newContext(L, dispatch, getState(), t)
			return L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, ctx)
		})
		if err != nil {
			h.logger.Error("%s: %v", id, err)
			dispatch(store.Alert(fmt.Sprintf("%s failed", id)))
		}
	}
}

// canExecuteFunc adapts a Lua predicate. Errors count as false.
func (h *Host) canExecuteFunc(id string, fn *lua.LFunction) func(*store.State) bool {
	return func(st *store.State) bool {
		ok := false
		err := h.st.do(func(L *lua.LState) error {
			ctx := h.newContext(L, nil, st, "")
			if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, ctx); err != nil {
				return err
			}
			ok = lua.LVAsBool(L.Get(-1))
			L.Pop(1)
			return nil
		})
		if err != nil {
			h.logger.Error("%s can_execute: %v", id, err)
			return false
		}
		return ok
	}
}

// newContext builds the ctx table. dispatch may be nil for predicates, in
// which case ctx.dispatch raises an error.
func (h *Host) newContext(L *lua.LState, dispatch store.DispatchFunc, st *store.State, t command.InvocationType) *lua.LTable {
	ctx := L.NewTable()
	ctx.RawSetString("type", lua.LString(t))
	if st != nil {
		if st.Cursor != nil {
			ctx.RawSetString("cursor", lua.LString(st.Cursor.String()))
		}
		ctx.RawSetString("value", lua.LString(st.CursorValue()))
		mcs := L.NewTable()
		for _, p := range st.Multicursors {
			mcs.Append(lua.LString(p.String()))
		}
		ctx.RawSetString("multicursors", mcs)
	}

	ctx.RawSetString("dispatch", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if dispatch == nil {
			L.RaiseError("dispatch is not available here")
			return 0
		}
		if h.known != nil && !h.known(name) {
			L.RaiseError("%v: %s", ErrUnknownAction, name)
			return 0
		}
		args := argsFromTable(L.OptTable(2, L.NewTable()))
		dispatch(store.NewAction(name, args))
		return 0
	}))
	ctx.RawSetString("alert", L.NewFunction(func(L *lua.LState) int {
		msg := L.CheckString(1)
		if dispatch != nil {
			dispatch(store.Alert(msg))
		}
		return 0
	}))
	return ctx
}
