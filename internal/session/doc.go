// Package session turns recognized gestures into breathing-session commands.
//
// A Binder maps each gesture kind to a command name and hands the resulting
// Command to a Dispatcher, which is whatever controls the session. An
// optional Lua Script can override the mapping per gesture:
//
//	function on_gesture(g)
//	  if g.kind == "pinch" and g.value > 2 then
//	    return "view.reset"
//	  end
//	  return nil -- use the configured binding
//	end
//
// The table passed to on_gesture has the fields kind, x, y and value.
// Returning a string names the command; returning nil falls back to the
// bindings; returning an empty string drops the gesture.
package session
