// Package plugin loads user commands written in Lua.
//
// A script declares commands by calling the global command function:
//
//	command {
//	  id = "markDone",
//	  label = "Mark done",
//	  gesture = "rdrd",
//	  keyboard = "Meta+d",
//	  multicursor = { filter = "prefer-ancestor" },
//	  exec = function(ctx)
//	    ctx.dispatch("editThought", { value = "✓ " .. ctx.value })
//	  end,
//	}
//
// Declarations become command.Command values before the registry indices
// are built, so script commands take part in chord and gesture conflict
// detection like built-ins.
//
// The exec function receives a ctx table:
//
//	ctx.type           invocation type ("gesture", "keyboard", ...)
//	ctx.cursor         cursor path ("/id/id") or nil
//	ctx.value          cursor thought text or ""
//	ctx.multicursors   array of selected paths
//	ctx.dispatch(name, args)
//	ctx.alert(message)
//
// Scripts run in a sandbox without io, os, debug or package.
package plugin
