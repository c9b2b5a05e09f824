package parser

import (
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// ErrUnknownFormat is returned when no parser is registered under a name.
var ErrUnknownFormat = errors.New("unknown format")

// Registry routes a format name to its parser. Safe for concurrent use.
type Registry struct {
	parsers map[string]Parser
	mu      sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// NewDefaultRegistry returns a registry holding the JSON and TOON parsers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(JSONParser{})
	r.Register(TOONParser{})
	return r
}

// Register binds p under p.Format(), replacing any previous binding.
func (r *Registry) Register(p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[p.Format()] = p
}

// Lookup returns the parser bound to format.
func (r *Registry) Lookup(format string) (Parser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.parsers[format]
	return p, ok
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	names := lo.Keys(r.parsers)
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Parse runs the parser bound to format. Only an unknown format yields an
// error; parse failures are reported inside the Result.
func (r *Registry) Parse(format, text string) (Result, error) {
	p, ok := r.Lookup(format)
	if !ok {
		return Result{}, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
	return p.Parse(text), nil
}
