package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/dshills/breathe/internal/gesture"
)

// DefaultScriptTimeout bounds one on_gesture call.
const DefaultScriptTimeout = 50 * time.Millisecond

const hookName = "on_gesture"

// Script is a sandboxed Lua script that resolves gestures to commands.
//
// gopher-lua states are not goroutine-safe; every call into the state holds
// the script's mutex.
type Script struct {
	mu sync.Mutex

	L       *lua.LState
	name    string
	timeout time.Duration
	logger  *zap.Logger
	closed  bool
}

// ScriptOption configures a Script.
type ScriptOption func(*Script)

// WithScriptTimeout sets the per-call time limit. Zero disables it.
func WithScriptTimeout(d time.Duration) ScriptOption {
	return func(s *Script) {
		if d >= 0 {
			s.timeout = d
		}
	}
}

// WithScriptLogger routes the script's print output to l.
func WithScriptLogger(l *zap.Logger) ScriptOption {
	return func(s *Script) {
		if l != nil {
			s.logger = l
		}
	}
}

// LoadScript reads and compiles the script at path.
func LoadScript(path string, opts ...ScriptOption) (*Script, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script %s: %w", path, err)
	}
	return NewScript(path, string(src), opts...)
}

// NewScript compiles src and runs its top level. The script must define a
// global on_gesture function.
func NewScript(name, src string, opts ...ScriptOption) (*Script, error) {
	s := &Script{
		name:    name,
		timeout: DefaultScriptTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	s.L = L
	s.openLibraries()

	fn, err := L.Load(strings.NewReader(src), name)
	if err != nil {
		L.Close()
		return nil, fmt.Errorf("compiling %s: %w", name, err)
	}
	L.Push(fn)
	if err := s.protect(func() error { return L.PCall(0, lua.MultRet, nil) }); err != nil {
		L.Close()
		return nil, fmt.Errorf("running %s: %w", name, err)
	}
	L.SetTop(0)

	if L.GetGlobal(hookName).Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("%s: %w", name, ErrNoScript)
	}
	return s, nil
}

// openLibraries opens the base, table, string and math libraries and
// removes everything that can reach the file system or load code.
func (s *Script) openLibraries() {
	L := s.L
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		s.logger.Info("script output",
			zap.String("script", s.name),
			zap.Strings("values", parts))
		return 0
	}))
}

// Name returns the script's name, usually its path.
func (s *Script) Name() string {
	return s.name
}

// Resolve calls on_gesture for g. ok is false when the script returned nil
// and the caller should fall back to its bindings.
func (s *Script) Resolve(g gesture.Gesture) (name string, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", false, ErrScriptClosed
	}
	L := s.L

	if s.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		L.SetContext(ctx)
		defer L.RemoveContext()
	}

	arg := L.NewTable()
	arg.RawSetString("kind", lua.LString(g.Kind.String()))
	arg.RawSetString("x", lua.LNumber(g.Point.X))
	arg.RawSetString("y", lua.LNumber(g.Point.Y))
	arg.RawSetString("value", lua.LNumber(g.Value))

	top := L.GetTop()
	defer L.SetTop(top)

	err = s.protect(func() error {
		return L.CallByParam(lua.P{
			Fn:      L.GetGlobal(hookName),
			NRet:    1,
			Protect: true,
		}, arg)
	})
	if err != nil {
		if ctx := L.Context(); ctx != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", false, fmt.Errorf("%s: %w", s.name, ErrScriptTimeout)
		}
		return "", false, fmt.Errorf("%s: %w", s.name, err)
	}

	switch ret := L.Get(-1).(type) {
	case lua.LString:
		return string(ret), true, nil
	default:
		if ret == lua.LNil {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%s: %s returned %s, want string or nil", s.name, hookName, ret.Type())
	}
}

// Close releases the Lua state. Later calls to Resolve fail with
// ErrScriptClosed.
func (s *Script) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.L.Close()
	return nil
}

// protect converts a Go panic inside the interpreter into an error.
func (s *Script) protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}
