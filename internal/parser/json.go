package parser

import "encoding/json"

// FormatJSON is the registry name of the standard format.
const FormatJSON = "json"

// JSONParser decodes standard JSON of any shape. It holds no state.
type JSONParser struct{}

func (JSONParser) Format() string { return FormatJSON }

// Parse decodes text into plain Go values (map[string]any, []any, float64,
// string, bool or nil). Malformed input fails with the decoder's message.
func (JSONParser) Parse(text string) Result {
	return Measure(func() (any, error) {
		var v any
		if err := json.Unmarshal([]byte(text), &v); err != nil {
			return nil, err
		}
		return v, nil
	})
}

// ParseJSON parses text with the standard format parser.
func ParseJSON(text string) Result {
	return JSONParser{}.Parse(text)
}
