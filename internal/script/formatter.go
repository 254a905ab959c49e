// Package script runs user-supplied Lua cell formatters in a restricted
// interpreter.
package script

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// ErrNoFormat is returned when a script does not define a format function.
var ErrNoFormat = errors.New("script: no format function defined")

// Formatter wraps a Lua chunk defining format(value, row, column) -> string.
// A Formatter owns one interpreter state and serializes calls into it.
type Formatter struct {
	mu sync.Mutex
	ls *lua.LState
	fn *lua.LFunction
}

// NewFormatter compiles a formatter script. The interpreter exposes only
// the base, table, string, and math libraries; os and io stay closed.
func NewFormatter(src string) (*Formatter, error) {
	ls := lua.NewState(lua.Options{SkipOpenLibs: true})

	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := ls.CallByParam(lua.P{
			Fn:      ls.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			ls.Close()
			return nil, fmt.Errorf("script: open %s: %w", lib.name, err)
		}
	}

	if err := ls.DoString(src); err != nil {
		ls.Close()
		return nil, fmt.Errorf("script: compile: %w", err)
	}

	fn, ok := ls.GetGlobal("format").(*lua.LFunction)
	if !ok {
		ls.Close()
		return nil, ErrNoFormat
	}

	return &Formatter{ls: ls, fn: fn}, nil
}

// Format runs the script for one cell value and returns the formatted text.
func (f *Formatter) Format(value any, row, col int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ls == nil {
		return "", errors.New("script: formatter closed")
	}

	if err := f.ls.CallByParam(lua.P{
		Fn:      f.fn,
		NRet:    1,
		Protect: true,
	}, toLua(f.ls, value), lua.LNumber(row), lua.LNumber(col)); err != nil {
		return "", fmt.Errorf("script: format: %w", err)
	}

	ret := f.ls.Get(-1)
	f.ls.Pop(1)
	return lua.LVAsString(ret), nil
}

// Close releases the interpreter. The formatter is unusable afterward.
func (f *Formatter) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ls != nil {
		f.ls.Close()
		f.ls = nil
	}
}

// toLua converts a Go cell value to a Lua value.
func toLua(ls *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	default:
		return lua.LString(fmt.Sprintf("%v", val))
	}
}
