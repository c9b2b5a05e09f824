package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

// FormatTOON is the registry name of the pipe-delimited format.
const FormatTOON = "toon"

// TOON layout:
//
//	document := pair ('|' pair)*
//	pair     := key ':' scalar | key '[' v (',' v)* ']' | key '{' k:v (',' k:v)* '}'
//
// There is no escaping. A value containing any of | : { } [ ] , cannot be
// represented. All values stay strings.
const (
	pairSep  = "|"
	itemSep  = ","
	entrySep = ":"
)

type delimiter byte

const (
	delimScalar delimiter = ':'
	delimArray  delimiter = '['
	delimMap    delimiter = '{'
)

// segment is one '|' separated pair before classification.
type segment struct {
	key   string
	delim delimiter
	body  string // text after the delimiter character
}

// TOONParser parses the pipe-delimited format. It holds no state.
type TOONParser struct{}

func (TOONParser) Format() string { return FormatTOON }

// Parse never fails on malformed pairs: they are dropped without error.
// That lossy policy is kept as the format has always behaved, not because it
// was validated as a design.
func (TOONParser) Parse(text string) Result {
	return Measure(func() (any, error) {
		return parseDocument(text), nil
	})
}

// ParseTOON parses text with the custom format parser.
func ParseTOON(text string) Result {
	return TOONParser{}.Parse(text)
}

func parseDocument(text string) *Document {
	doc := newDocument()
	for _, raw := range strings.Split(text, pairSep) {
		seg, ok := scanSegment(raw)
		if !ok {
			continue
		}
		switch seg.delim {
		case delimArray:
			doc.set(seg.key, splitItems(closedBody(seg.body)))
		case delimMap:
			doc.set(seg.key, parseFlatMap(closedBody(seg.body)))
		case delimScalar:
			doc.set(seg.key, strings.TrimSpace(seg.body))
		}
	}
	return doc
}

// scanSegment finds the first ':', '[' or '{' in one pass. The key is
// everything before it and must be at least one character long before
// trimming. A segment without any delimiter is reported as not ok.
func scanSegment(raw string) (segment, bool) {
	for i := 0; i < len(raw); i++ {
		switch d := delimiter(raw[i]); d {
		case delimScalar, delimArray, delimMap:
			if i == 0 {
				return segment{}, false
			}
			return segment{
				key:   strings.TrimSpace(raw[:i]),
				delim: d,
				body:  raw[i+1:],
			}, true
		}
	}
	return segment{}, false
}

// closedBody drops the last rune of a bracket body, which is the closing
// bracket in well-formed input. An unterminated body loses its last rune all
// the same.
func closedBody(body string) string {
	_, size := utf8.DecodeLastRuneInString(body)
	return body[:len(body)-size]
}

func splitItems(body string) []string {
	return lo.Map(strings.Split(body, itemSep), func(item string, _ int) string {
		return strings.TrimSpace(item)
	})
}

// parseFlatMap reads `k:v` entries. Entries with an empty key or value after
// trimming, or without a ':', are dropped silently.
func parseFlatMap(body string) *FlatMap {
	m := newFlatMap()
	for _, entry := range strings.Split(body, itemSep) {
		k, v, found := strings.Cut(entry, entrySep)
		if !found {
			continue
		}
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		m.set(k, v)
	}
	return m
}
