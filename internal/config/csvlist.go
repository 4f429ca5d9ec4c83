package config

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// CSVList is a string list that may also be written as one comma separated
// string, e.g. "stories,story,internal".
type CSVList []string

// ParseCSV splits s on commas, trimming space and dropping empty items.
func ParseCSV(s string) CSVList {
	var out CSVList
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// UnmarshalJSON accepts a string or an array of strings.
func (l *CSVList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = ParseCSV(s)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*l = items
	return nil
}

// UnmarshalYAML accepts a scalar or a sequence of strings.
func (l *CSVList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*l = ParseCSV(node.Value)
		return nil
	}
	var items []string
	if err := node.Decode(&items); err != nil {
		return err
	}
	*l = items
	return nil
}
