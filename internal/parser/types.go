package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Parser turns raw text of one format into a Result.
type Parser interface {
	Format() string
	Parse(text string) Result
}

// Result is the envelope every parser returns, success or not.
// Elapsed is always set.
type Result struct {
	Success bool
	Data    any
	Error   string
	Elapsed time.Duration
}

// ElapsedMs returns the measured duration in fractional milliseconds.
func (r Result) ElapsedMs() float64 {
	return float64(r.Elapsed) / float64(time.Millisecond)
}

// ProcessingTime renders the elapsed time as "0.0123 ms".
func (r Result) ProcessingTime() string {
	return fmt.Sprintf("%.4f ms", r.ElapsedMs())
}

// FlatMap is the one-level map produced by a `key{a:b,c:d}` pair.
type FlatMap struct {
	keys   []string
	values map[string]string
}

func newFlatMap() *FlatMap {
	return &FlatMap{values: make(map[string]string)}
}

func (m *FlatMap) set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *FlatMap) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *FlatMap) Keys() []string {
	return append([]string(nil), m.keys...)
}

func (m *FlatMap) Len() int {
	return len(m.keys)
}

// ToMap copies the entries into a plain map.
func (m *FlatMap) ToMap() map[string]string {
	out := make(map[string]string, len(m.keys))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

func (m *FlatMap) MarshalJSON() ([]byte, error) {
	return marshalOrdered(m.keys, func(k string) any { return m.values[k] })
}

// Document is the value of a parsed TOON payload. Each entry holds a string,
// a []string or a *FlatMap. Keys keep the position of their first occurrence.
type Document struct {
	keys    []string
	entries map[string]any
}

func newDocument() *Document {
	return &Document{entries: make(map[string]any)}
}

func (d *Document) set(key string, value any) {
	if _, ok := d.entries[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.entries[key] = value
}

// Get returns the entry stored under key.
func (d *Document) Get(key string) (any, bool) {
	v, ok := d.entries[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (d *Document) Keys() []string {
	return append([]string(nil), d.keys...)
}

func (d *Document) Len() int {
	return len(d.keys)
}

// ToMap converts the document to plain Go values: string, []string and
// map[string]string.
func (d *Document) ToMap() map[string]any {
	out := make(map[string]any, len(d.keys))
	for k, v := range d.entries {
		switch tv := v.(type) {
		case *FlatMap:
			out[k] = tv.ToMap()
		case []string:
			out[k] = append([]string(nil), tv...)
		default:
			out[k] = tv
		}
	}
	return out
}

func (d *Document) MarshalJSON() ([]byte, error) {
	return marshalOrdered(d.keys, func(k string) any { return d.entries[k] })
}

func marshalOrdered(keys []string, value func(string) any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(value(k))
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
