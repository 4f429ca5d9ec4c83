package config

import (
	"errors"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	ferrors "git.home.luguber.info/inful/jsdocmd/internal/foundation/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "JSDOCMD_"

// LoadEnvFiles loads KEY=VALUE files into the process environment without
// overriding variables that are already set. Missing files are skipped; the
// names of loaded files are returned.
func LoadEnvFiles(files ...string) ([]string, error) {
	var loaded []string
	for _, f := range files {
		err := godotenv.Load(f)
		switch {
		case err == nil:
			loaded = append(loaded, f)
		case errors.Is(err, fs.ErrNotExist):
		default:
			return loaded, ferrors.ConfigError("load env file").WithCause(err).
				WithContext("path", f).
				Build()
		}
	}
	return loaded, nil
}

// LookupFunc reports the value of an environment variable.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides fields from JSDOCMD_* variables.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	list := func(name string, dst *CSVList) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = ParseCSV(v)
		}
	}
	num := func(name string, dst *int) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return envError(name, v, err)
		}
		*dst = n
		return nil
	}

	str("CUSTOM_ELEMENTS", &c.CustomElements)
	str("DIR", &c.Dir)
	str("SRC_DIR", &c.SrcDir)
	str("OUT_FILE", &c.OutFile)
	str("IMPORT_ROOT", &c.ImportRoot)
	str("JSDOC_COMMAND", &c.JSDocCommand)
	str("RETRY_BACKOFF", &c.RetryBackoff)
	str("LOG_LEVEL", &c.Logging.Level)
	str("LOG_FORMAT", &c.Logging.Format)
	list("EXCLUDE_PATHS", &c.ExcludePaths)
	list("EXCLUDE_KINDS", &c.ExcludeKinds)
	list("ANALYZE_FLAGS", &c.AnalyzeFlags)

	if v, ok := lookup(EnvPrefix + "FENCE_LANGUAGES"); ok {
		c.FenceLanguages = ParseCSV(v)
	}
	if v, ok := lookup(EnvPrefix + "KEEP_IMPORTS"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return envError("KEEP_IMPORTS", v, err)
		}
		c.KeepImports = b
	}
	if err := num("WORKERS", &c.Workers); err != nil {
		return err
	}
	return num("RETRIES", &c.Retries)
}

func envError(name, value string, err error) error {
	return ferrors.ConfigError("invalid environment override").WithCause(err).
		WithContext("variable", EnvPrefix+name).
		WithContext("value", value).
		Build()
}
