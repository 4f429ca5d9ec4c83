package config

import (
	"encoding/json"
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/jsdocmd/internal/foundation/errors"
)

// Marshal encodes c as YAML for .yaml/.yml paths and as indented JSON otherwise.
func (c *Config) Marshal(path string) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(c)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Dump writes c to path in the format implied by its extension.
func (c *Config) Dump(path string) error {
	data, err := c.Marshal(path)
	if err != nil {
		return ferrors.InternalError("encode config").WithCause(err).Build()
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return ferrors.FileSystemError("write config file").WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}

// Compact returns c as single-line JSON.
func (c *Config) Compact() ([]byte, error) {
	return json.Marshal(c)
}

// Tree returns c as generic maps and slices, keyed like the config file.
func (c *Config) Tree() (map[string]any, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}
