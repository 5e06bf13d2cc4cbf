package scripting

import (
	"fmt"
	"math"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// Formula is a compiled Lua expression over named integer variables, e.g.
// "level * points_per_level + math.floor(level / 4)".
//
// Formula is immutable and safe for concurrent Eval: each call runs in its
// own sandboxed LState.
type Formula struct {
	source    string
	proto     *lua.FunctionProto
	instLimit int
}

// Compile parses expr once so later evaluations skip the parser.
//
// Precondition: expr is a single Lua expression, not a statement block.
// Postcondition: returns a non-nil Formula or a syntax error.
func Compile(expr string, instLimit int) (*Formula, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("scripting: empty formula")
	}
	chunk, err := parse.Parse(strings.NewReader("return ("+expr+")"), "formula")
	if err != nil {
		return nil, fmt.Errorf("scripting: parsing formula %q: %w", expr, err)
	}
	proto, err := lua.Compile(chunk, "formula")
	if err != nil {
		return nil, fmt.Errorf("scripting: compiling formula %q: %w", expr, err)
	}
	return &Formula{source: expr, proto: proto, instLimit: instLimit}, nil
}

// Source returns the expression text as written.
func (f *Formula) Source() string {
	return f.source
}

// Eval binds vars as globals and returns the expression value truncated
// toward negative infinity.
//
// Postcondition: returns an error if the expression fails, exceeds its
// instruction budget, or does not produce a finite number.
func (f *Formula) Eval(vars map[string]int) (int, error) {
	L, cancel := NewSandboxedState(f.instLimit)
	defer L.Close()
	defer cancel()

	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		L.SetGlobal(name, lua.LNumber(vars[name]))
	}

	L.Push(L.NewFunctionFromProto(f.proto))
	if err := L.PCall(0, 1, nil); err != nil {
		return 0, fmt.Errorf("scripting: evaluating %q: %w", f.source, err)
	}
	ret := L.Get(-1)
	L.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("scripting: formula %q returned %s, want number", f.source, ret.Type())
	}
	v := float64(n)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("scripting: formula %q returned non-finite %v", f.source, v)
	}
	return int(math.Floor(v)), nil
}
