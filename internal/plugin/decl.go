package plugin

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/mindchord/internal/command"
	"github.com/dshills/mindchord/internal/input/gesture"
	"github.com/dshills/mindchord/internal/input/key"
	"github.com/dshills/mindchord/internal/store"
	"github.com/dshills/mindchord/internal/thought"
)

func (h *Host) parseDecl(L *lua.LState, tbl *lua.LTable) (*command.Command, error) {
	id := stringField(tbl, "id")
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidCommand)
	}
	exec, ok := tbl.RawGetString("exec").(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("%w: %s: exec must be a function", ErrInvalidCommand, id)
	}

	cmd := &command.Command{
		ID:              id,
		Label:           stringField(tbl, "label"),
		InverseLabel:    stringField(tbl, "inverse_label"),
		Description:     stringField(tbl, "description"),
		Icon:            stringField(tbl, "icon"),
		HideFromHelp:    boolField(tbl, "hide_from_help"),
		HideFromPalette: boolField(tbl, "hide_from_palette"),
		Navigation:      boolField(tbl, "navigation"),
		Exec:            h.execFunc(id, exec),
	}
	if cmd.Label == "" {
		cmd.Label = id
	}

	for _, s := range stringsField(tbl, "gesture", "gestures") {
		seq, err := gesture.ParseSequence(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCommand, id, err)
		}
		cmd.Gestures = append(cmd.Gestures, seq)
	}
	for _, s := range stringsField(tbl, "keyboard", "keys") {
		c, err := key.ParseChord(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCommand, id, err)
		}
		cmd.Keyboard = append(cmd.Keyboard, c)
	}

	if fn, ok := tbl.RawGetString("can_execute").(*lua.LFunction); ok {
		cmd.CanExecute = h.canExecuteFunc(id, fn)
	}

	policy, err := parseMulticursor(tbl.RawGetString("multicursor"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCommand, id, err)
	}
	cmd.Multicursor = policy
	return cmd, nil
}

// parseMulticursor maps the multicursor field:
//
//	nil / false   single cursor
//	true          batch with defaults
//	"ignore"      single cursor, safe while a selection exists
//	{...}         batch with the given options
func parseMulticursor(v lua.LValue) (*command.MulticursorPolicy, error) {
	switch v := v.(type) {
	case *lua.LNilType:
		return nil, nil
	case lua.LBool:
		if bool(v) {
			return command.MulticursorEnabled(), nil
		}
		return nil, nil
	case lua.LString:
		if v == "ignore" {
			return command.MulticursorIgnore, nil
		}
		return nil, fmt.Errorf("multicursor: unknown mode %q", string(v))
	case *lua.LTable:
		p := command.MulticursorEnabled()
		p.Disallow = boolField(v, "disallow")
		p.Error = stringField(v, "error")
		p.Reverse = boolField(v, "reverse")
		p.ClearMulticursor = boolField(v, "clear")
		p.PreventSetCursor = boolField(v, "prevent_set_cursor")
		switch f := command.Filter(stringField(v, "filter")); f {
		case "", command.FilterAll, command.FilterFirstSibling, command.FilterLastSibling, command.FilterPreferAncestor:
			p.Filter = f
		default:
			return nil, fmt.Errorf("multicursor: unknown filter %q", string(f))
		}
		return p, nil
	default:
		return nil, fmt.Errorf("multicursor: unexpected %s", v.Type())
	}
}

// argsFromTable converts ctx.dispatch arguments. Unrecognized keys go to
// Extra.
func argsFromTable(tbl *lua.LTable) store.Args {
	var a store.Args
	tbl.ForEach(func(k, v lua.LValue) {
		name, ok := k.(lua.LString)
		if !ok {
			return
		}
		switch string(name) {
		case "path":
			a.Path = thought.ParsePath(v.String())
		case "paths":
			if t, ok := v.(*lua.LTable); ok {
				t.ForEach(func(_, p lua.LValue) {
					a.Paths = append(a.Paths, thought.ParsePath(p.String()))
				})
			}
		case "value":
			a.Value = v.String()
		case "label":
			a.Label = v.String()
		case "message":
			a.Message = v.String()
		case "flag":
			a.Flag = lua.LVAsBool(v)
		case "above":
			a.Above = lua.LVAsBool(v)
		case "preserve_multicursor":
			a.PreserveMulticursor = lua.LVAsBool(v)
		default:
			if a.Extra == nil {
				a.Extra = make(map[string]any)
			}
			a.Extra[string(name)] = goValue(v)
		}
	})
	return a
}

func goValue(v lua.LValue) any {
	switch v := v.(type) {
	case lua.LString:
		return string(v)
	case lua.LNumber:
		return float64(v)
	case lua.LBool:
		return bool(v)
	default:
		return v.String()
	}
}

func stringField(tbl *lua.LTable, name string) string {
	if s, ok := tbl.RawGetString(name).(lua.LString); ok {
		return string(s)
	}
	return ""
}

func boolField(tbl *lua.LTable, name string) bool {
	return lua.LVAsBool(tbl.RawGetString(name))
}

// stringsField reads a single string from one field or a list from another.
func stringsField(tbl *lua.LTable, single, list string) []string {
	var out []string
	if s := stringField(tbl, single); s != "" {
		out = append(out, s)
	}
	if t, ok := tbl.RawGetString(list).(*lua.LTable); ok {
		t.ForEach(func(_, v lua.LValue) {
			if s, ok := v.(lua.LString); ok {
				out = append(out, string(s))
			}
		})
	}
	return out
}
