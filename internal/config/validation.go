package config

import (
	"strings"

	ferrors "git.home.luguber.info/inful/jsdocmd/internal/foundation/errors"
	"git.home.luguber.info/inful/jsdocmd/internal/foundation/normalization"
	"git.home.luguber.info/inful/jsdocmd/internal/retry"
)

var retryModeNormalizer = normalization.NewNormalizer("retry backoff", map[string]retry.Mode{
	"fixed":       retry.ModeFixed,
	"linear":      retry.ModeLinear,
	"exponential": retry.ModeExponential,
}, retry.ModeLinear)

// Validate checks the merged configuration. Enum fields are normalized in place.
func (c *Config) Validate() error {
	required := []struct{ key, value string }{
		{"customElements", c.CustomElements},
		{"dir", c.Dir},
		{"srcDir", c.SrcDir},
		{"outFile", c.OutFile},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return invalid(r.key, "must not be empty")
		}
	}
	if strings.ContainsAny(c.OutFile, `/\`) {
		return invalid("outFile", "must be a file name, not a path")
	}
	if c.Workers < 1 {
		return invalid("workers", "must be at least 1")
	}
	if c.Retries < 0 {
		return invalid("retries", "cannot be negative")
	}
	if len(strings.Fields(c.JSDocCommand)) == 0 {
		return invalid("jsdocCommand", "must not be empty")
	}

	level, err := logLevelNormalizer.NormalizeWithError(c.Logging.Level)
	if err != nil {
		return invalid("logging.level", err.Error())
	}
	format, err := logFormatNormalizer.NormalizeWithError(c.Logging.Format)
	if err != nil {
		return invalid("logging.format", err.Error())
	}
	mode, err := retryModeNormalizer.NormalizeWithError(c.RetryBackoff)
	if err != nil {
		return invalid("retryBackoff", err.Error())
	}

	c.Logging.Level = strings.ToLower(level.String())
	c.Logging.Format = string(format)
	c.RetryBackoff = string(mode)
	return nil
}

// RetryPolicy builds the extractor retry policy.
func (c *Config) RetryPolicy() retry.Policy {
	return retry.NewPolicy(retryModeNormalizer.Normalize(c.RetryBackoff), 0, 0, c.Retries)
}

func invalid(key, reason string) error {
	return ferrors.ConfigError("invalid configuration: "+key+" "+reason).
		WithContext("key", key).
		Build()
}
