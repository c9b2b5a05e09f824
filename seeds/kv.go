package dynamic

import (
	"fmt"
	"strings"
)

// kv: semicolon separated key=value pairs, e.g. "name=Juan;city=Madrid".
func Parse(text string) (interface{}, error) {
	out := map[string]string{}
	for _, pair := range strings.Split(text, ";") {
		if strings.TrimSpace(pair) == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("pair %q has no '='", pair)
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out, nil
}
