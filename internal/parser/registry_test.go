package parser

import (
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upperParser struct{}

func (upperParser) Format() string { return "upper" }

func (upperParser) Parse(text string) Result {
	return Measure(func() (any, error) { return text + "!", nil })
}

func TestRegistry_Default(t *testing.T) {
	r := NewDefaultRegistry()
	assert.Equal(t, []string{"json", "toon"}, r.Formats())

	res, err := r.Parse(FormatTOON, "a:1")
	require.NoError(t, err)
	assert.True(t, res.Success)

	res, err = r.Parse(FormatJSON, "{")
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestRegistry_UnknownFormat(t *testing.T) {
	r := NewDefaultRegistry()
	_, err := r.Parse("yaml", "a: 1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownFormat))
	assert.Contains(t, err.Error(), `"yaml"`)
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Lookup("upper")
	assert.False(t, ok)

	r.Register(upperParser{})
	p, ok := r.Lookup("upper")
	require.True(t, ok)
	assert.Equal(t, "upper", p.Format())
	assert.Equal(t, []string{"upper"}, r.Formats())
}

func TestRegistry_ConcurrentParse(t *testing.T) {
	r := NewDefaultRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := r.Parse(FormatTOON, canonicalTOON)
			assert.NoError(t, err)
			assert.True(t, res.Success)
			assert.Equal(t, 5, res.Data.(*Document).Len())
		}()
	}
	r.Register(upperParser{})
	wg.Wait()
}
