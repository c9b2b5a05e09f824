package parser

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// ScriptTemplate is the shape a scripted format must follow.
const ScriptTemplate = `
package dynamic

func Parse(text string) (interface{}, error) {
    // format logic goes here
    return nil, nil
}
`

type scriptFunc = func(string) (interface{}, error)

// ScriptParser runs a format parser written in Go source and interpreted at
// runtime. The source is compiled once, when the parser is created.
type ScriptParser struct {
	name string
	fn   scriptFunc
	// the interpreter is not safe for concurrent calls
	mu sync.Mutex
}

// NewScriptParser compiles code and binds its dynamic.Parse function.
func NewScriptParser(name, code string) (*ScriptParser, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, errors.Wrap(err, "load stdlib symbols")
	}

	if _, err := i.Eval(code); err != nil {
		return nil, errors.Wrapf(err, "compile script %s", name)
	}

	v, err := i.Eval("dynamic.Parse")
	if err != nil {
		return nil, errors.Wrapf(err, "script %s: could not find Parse function", name)
	}

	fn, ok := v.Interface().(scriptFunc)
	if !ok {
		return nil, errors.Newf("script %s: Parse function has wrong signature", name)
	}

	return &ScriptParser{name: name, fn: fn}, nil
}

func (s *ScriptParser) Format() string { return s.name }

// Parse calls the script under the timing wrapper. Script errors and panics
// both end up in a failed Result.
func (s *ScriptParser) Parse(text string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Measure(func() (any, error) {
		return s.fn(text)
	})
}
