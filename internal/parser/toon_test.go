package parser

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const canonicalTOON = ExampleTOON

func parseTOONMap(t *testing.T, text string) map[string]any {
	t.Helper()
	res := ParseTOON(text)
	require.True(t, res.Success, "unexpected failure: %s", res.Error)
	doc, ok := res.Data.(*Document)
	require.True(t, ok, "data is %T, want *Document", res.Data)
	return doc.ToMap()
}

func TestParseTOON_Canonical(t *testing.T) {
	got := parseTOONMap(t, canonicalTOON)
	want := map[string]any{
		"nombre":  "Juan",
		"edad":    "30",
		"ciudad":  "Madrid",
		"hobbies": []string{"lectura", "deportes", "viajes"},
		"contacto": map[string]string{
			"email":    "juan@example.com",
			"telefono": "123456789",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseTOON() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTOON_Grammar(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]any
	}{
		{name: "empty input", input: "", want: map[string]any{}},
		{name: "scalar stays string", input: "n:42", want: map[string]any{"n": "42"}},
		{name: "boolean stays string", input: "ok:true", want: map[string]any{"ok": "true"}},
		// Dropping pairs without a delimiter is preserved as observed, not validated.
		{name: "pair without delimiter dropped", input: "a|b:1", want: map[string]any{"b": "1"}},
		{name: "nested entry without colon dropped", input: "x{p,q:2}", want: map[string]any{"x": map[string]string{"q": "2"}}},
		{name: "nested entry with empty side dropped", input: "x{:1,a:,b:2}", want: map[string]any{"x": map[string]string{"b": "2"}}},
		{name: "segment starting with delimiter dropped", input: ":v|[a]|{a:b}|k:v", want: map[string]any{"k": "v"}},
		{name: "whitespace trimmed", input: " a : 1 | list [ x , y ]| m { k : v }", want: map[string]any{
			"a":    "1",
			"list": []string{"x", "y"},
			"m":    map[string]string{"k": "v"},
		}},
		{name: "whitespace key is empty key", input: "  :v", want: map[string]any{"": "v"}},
		{name: "scalar keeps later delimiters", input: "url:http://host:80/{x}", want: map[string]any{"url": "http://host:80/{x}"}},
		{name: "nested value keeps later colons", input: "m{url:http://host}", want: map[string]any{"m": map[string]string{"url": "http://host"}}},
		{name: "empty array body", input: "a[]", want: map[string]any{"a": []string{""}}},
		{name: "empty scalar", input: "a:", want: map[string]any{"a": ""}},
		{name: "empty map", input: "m{}", want: map[string]any{"m": map[string]string{}}},
		{name: "unterminated array loses last char", input: "a[x,yz", want: map[string]any{"a": []string{"x", "y"}}},
		{name: "unterminated array loses last rune", input: "a[x,é", want: map[string]any{"a": []string{"x", ""}}},
		{name: "unterminated map loses last rune", input: "m{k:café", want: map[string]any{"m": map[string]string{"k": "caf"}}},
		{name: "multibyte values", input: "a[ñandú,é]|m{k:café}", want: map[string]any{
			"a": []string{"ñandú", "é"},
			"m": map[string]string{"k": "café"},
		}},
		{name: "lone opening bracket", input: "a[|b{", want: map[string]any{"a": []string{""}, "b": map[string]string{}}},
		{name: "newline inside value kept", input: "a:x\ny|b:1", want: map[string]any{"a": "x\ny", "b": "1"}},
		{name: "duplicate key last wins", input: "a:1|a:2", want: map[string]any{"a": "2"}},
		{name: "no nesting past one level", input: "m{a:{b:c}}", want: map[string]any{"m": map[string]string{"a": "{b:c}"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseTOONMap(t, tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseTOON(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseTOON_WellFormedIsTotal(t *testing.T) {
	var (
		segments []string
		want     = map[string]any{}
	)
	for i := 0; i < 50; i++ {
		key := fmt.Sprintf("k%d", i)
		switch i % 3 {
		case 0:
			segments = append(segments, fmt.Sprintf("%s:%d", key, i))
			want[key] = strconv.Itoa(i)
		case 1:
			segments = append(segments, fmt.Sprintf("%s[%d,true,x]", key, i))
			want[key] = []string{strconv.Itoa(i), "true", "x"}
		case 2:
			segments = append(segments, fmt.Sprintf("%s{n:%d,b:false}", key, i))
			want[key] = map[string]string{"n": strconv.Itoa(i), "b": "false"}
		}
	}

	got := parseTOONMap(t, strings.Join(segments, "|"))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseTOON() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTOON_ValidUTF8(t *testing.T) {
	res := ParseTOON("a[x,é|m{k:café|s:ü")
	require.True(t, res.Success)

	out, err := json.Marshal(res.Data)
	require.NoError(t, err)
	assert.True(t, utf8.Valid(out))
	assert.NotContains(t, string(out), `\ufffd`)
	assert.Equal(t, `{"a":["x",""],"m":{"k":"caf"},"s":"ü"}`, string(out))
}

func TestParseTOON_PreservesOrder(t *testing.T) {
	res := ParseTOON("z:1|a[x]|m{b:2,a:1}|z:3")
	require.True(t, res.Success)
	doc := res.Data.(*Document)

	assert.Equal(t, []string{"z", "a", "m"}, doc.Keys())
	assert.Equal(t, 3, doc.Len())

	v, ok := doc.Get("z")
	assert.True(t, ok)
	assert.Equal(t, "3", v)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, `{"z":"3","a":["x"],"m":{"b":"2","a":"1"}}`, string(out))
}

func TestParseTOON_Elapsed(t *testing.T) {
	res := ParseTOON(canonicalTOON)
	assert.True(t, res.Success)
	assert.Empty(t, res.Error)
	assert.GreaterOrEqual(t, res.ElapsedMs(), 0.0)
}

func TestScanSegment(t *testing.T) {
	tests := []struct {
		raw   string
		want  segment
		found bool
	}{
		{raw: "a:b", want: segment{key: "a", delim: delimScalar, body: "b"}, found: true},
		{raw: "a[b]", want: segment{key: "a", delim: delimArray, body: "b]"}, found: true},
		{raw: "a{b:c}", want: segment{key: "a", delim: delimMap, body: "b:c}"}, found: true},
		{raw: "a{b:[c]}", want: segment{key: "a", delim: delimMap, body: "b:[c]}"}, found: true},
		{raw: "abc", found: false},
		{raw: ":abc", found: false},
		{raw: "", found: false},
	}

	for _, tt := range tests {
		got, found := scanSegment(tt.raw)
		assert.Equal(t, tt.found, found, tt.raw)
		if found {
			assert.Equal(t, tt.want, got, tt.raw)
		}
	}
}

func BenchmarkParseTOON(b *testing.B) {
	for i := 0; i < b.N; i++ {
		parseDocument(canonicalTOON)
	}
}
