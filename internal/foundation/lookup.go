package foundation

import (
	"strconv"
	"strings"
)

// Lookup retrieves a nested value from decoded data (maps and slices as
// produced by encoding/json or yaml.v3) along a path such as
// "modules[0].exports.kind". An empty sep means ".".
//
// Any segment that does not exist yields None; Lookup never panics. A key
// that is present with a null value yields Some(nil).
func Lookup(root any, path, sep string) Option[any] {
	if sep == "" {
		sep = "."
	}
	path = strings.ReplaceAll(path, "[", sep)
	path = strings.ReplaceAll(path, "]", "")

	current := root
	for _, segment := range strings.Split(path, sep) {
		if segment == "" {
			continue
		}
		next, ok := step(current, segment)
		if !ok {
			return None[any]()
		}
		current = next
	}
	return Some(current)
}

func step(current any, segment string) (any, bool) {
	switch node := current.(type) {
	case map[string]any:
		v, ok := node[segment]
		return v, ok
	case map[any]any:
		v, ok := node[segment]
		return v, ok
	case []any:
		i, err := strconv.Atoi(segment)
		if err != nil || i < 0 || i >= len(node) {
			return nil, false
		}
		return node[i], true
	case []string:
		i, err := strconv.Atoi(segment)
		if err != nil || i < 0 || i >= len(node) {
			return nil, false
		}
		return node[i], true
	default:
		return nil, false
	}
}
