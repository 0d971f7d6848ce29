// Package config carries the runtime configuration every command
// receives explicitly: the logger, interactivity mode, and the
// environment-based tunable resolution.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/splogin/splogin/internal/logging"
)

// EnvPrefix namespaces every splogin environment variable.
const EnvPrefix = "SPLOGIN_"

// Config is built once by the root command and handed to every
// subcommand constructor.
type Config struct {
	Logger         *logging.Logger
	NonInteractive bool
	EnvFile        string
}

// FromEnv resolves a tunable from SPLOGIN_<key>, falling back to the
// given default. Flag values take precedence over both; the command
// layer checks flag.Changed before calling this.
func FromEnv(key, fallback string) string {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		return v
	}
	return fallback
}

// LoadEnvFile reads a dotenv file and applies it to the process
// environment, overriding existing values. `${VAR}` references inside
// values are expanded against the environment as it was before the
// file applied; unset references are kept literal.
func LoadEnvFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}

	// godotenv substitutes ${VAR} against the file's own entries only,
	// so references are resolved here first, on the raw content, before
	// the parser sees them. Unset references are escaped so godotenv
	// passes them through as literals instead of emptying them.
	expanded := os.Expand(string(raw), func(name string) string {
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return `\${` + name + "}"
	})

	values, err := godotenv.Parse(strings.NewReader(expanded))
	if err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}

	for key, value := range values {
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("setting %s from env file: %w", key, err)
		}
	}
	return nil
}
