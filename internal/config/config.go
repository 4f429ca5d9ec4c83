// Package config loads and merges jsdocmd configuration.
//
// Precedence, lowest first: Default, the config file, JSDOCMD_* environment
// variables (after .env files are loaded), then CLI flags applied by the caller.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/jsdocmd/internal/foundation/errors"
)

// DefaultPath is the config file read when none is given.
const DefaultPath = ".jsdoc-markdown.config.json"

// Config is the merged configuration of one run.
type Config struct {
	CustomElements string   `json:"customElements" yaml:"customElements"`
	Dir            string   `json:"dir"            yaml:"dir"`
	SrcDir         string   `json:"srcDir"         yaml:"srcDir"`
	OutFile        string   `json:"outFile"        yaml:"outFile"`
	KeepImports    bool     `json:"keepImports"    yaml:"keepImports"`
	ImportRoot     string   `json:"importRoot"     yaml:"importRoot"`
	ExcludePaths   CSVList  `json:"excludePaths"   yaml:"excludePaths"`
	ExcludeKinds   CSVList  `json:"excludeKinds"   yaml:"excludeKinds"`
	AnalyzeFlags   CSVList  `json:"analyzeFlags"   yaml:"analyzeFlags"`
	FenceLanguages []string `json:"fenceLanguages" yaml:"fenceLanguages"`
	Workers        int      `json:"workers"        yaml:"workers"`
	JSDocCommand   string   `json:"jsdocCommand"   yaml:"jsdocCommand"`
	Retries        int      `json:"retries"        yaml:"retries"`
	RetryBackoff   string   `json:"retryBackoff"   yaml:"retryBackoff"`
	Logging        Logging  `json:"logging"        yaml:"logging"`
}

// Logging configures the slog handler.
type Logging struct {
	Level  string `json:"level"  yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		CustomElements: "custom-elements.json",
		Dir:            "dist",
		SrcDir:         "src",
		OutFile:        "README.md",
		ExcludePaths:   CSVList{"stories", "story", "internal", "test"},
		ExcludeKinds:   CSVList{"custom-element-definition"},
		AnalyzeFlags:   CSVList{"litelement"},
		FenceLanguages: []string{"js"},
		Workers:        4,
		JSDocCommand:   "npx jsdoc -X",
		Retries:        2,
		RetryBackoff:   "linear",
		Logging:        Logging{Level: "info", Format: "text"},
	}
}

// Load returns Default overlaid with the file at path (when it exists) and
// the process environment. found reports whether the file was read.
func Load(path string) (cfg *Config, found bool, err error) {
	cfg = Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		found = true
		if err := decode(path, []byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, true, err
		}
	case !os.IsNotExist(err):
		return nil, false, ferrors.ConfigError("read config file").WithCause(err).
			WithContext("path", path).
			Build()
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, found, err
	}
	return cfg, found, nil
}

func decode(path string, data []byte, cfg *Config) error {
	var err error
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return ferrors.ConfigError("parse config file").WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// AnalyzerFlags returns the analyzer flags prefixed with "--".
func (c *Config) AnalyzerFlags() []string {
	flags := make([]string, 0, len(c.AnalyzeFlags))
	for _, f := range c.AnalyzeFlags {
		flags = append(flags, "--"+strings.TrimLeft(f, "-"))
	}
	return flags
}
