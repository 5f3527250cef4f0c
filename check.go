// File: lixenwraith/ini/check.go
package ini

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// CheckTimeout bounds a single evaluation of a check expression.
const CheckTimeout = 100 * time.Millisecond

// compileCheck compiles a Lua boolean expression into a value predicate.
// The value under test is bound to the global v: booleans and numbers map to
// their Lua counterparts, text kinds to strings. Only a result of exactly true
// accepts the value; runtime errors reject it. Lua numbers are float64, so
// integers beyond 2^53 reach the expression rounded; min and max compare exactly.
//
//	v >= 1024 and v < 49152
//	#v <= 16 and v:match("^%l+$") ~= nil
func compileCheck(expr string) (func(Value) bool, error) {
	const chunkName = "<check>"
	chunk, err := parse.Parse(strings.NewReader("return "+expr), chunkName)
	if err != nil {
		return nil, fmt.Errorf("invalid check expression %q: %w", expr, err)
	}
	proto, err := lua.Compile(chunk, chunkName)
	if err != nil {
		return nil, fmt.Errorf("invalid check expression %q: %w", expr, err)
	}

	var (
		mu sync.Mutex
		L  = newCheckState()
	)
	return func(v Value) bool {
		mu.Lock()
		defer mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), CheckTimeout)
		defer cancel()
		L.SetContext(ctx)
		defer L.RemoveContext()

		L.SetGlobal("v", luaValue(v))
		L.Push(L.NewFunctionFromProto(proto))
		if err := L.PCall(0, 1, nil); err != nil {
			return false
		}
		ret := L.Get(-1)
		L.Pop(1)
		return ret == lua.LTrue
	}, nil
}

// newCheckState opens base, string and math only and removes code loading.
func newCheckState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

func luaValue(v Value) lua.LValue {
	switch v.Kind() {
	case KindBool:
		return lua.LBool(v.b)
	case KindSigned:
		return lua.LNumber(v.i)
	case KindUnsigned:
		return lua.LNumber(v.u)
	case KindFloat:
		return lua.LNumber(v.f)
	default:
		return lua.LString(v.s)
	}
}
