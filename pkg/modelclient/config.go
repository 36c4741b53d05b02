package modelclient

import (
	"os"
	"strings"
)

// Environment keys consulted by Resolve.
const (
	EnvHost  = "OLLAMA_HOST"
	EnvModel = "DEFAULT_MODEL"
)

// Hardcoded fallbacks used when neither an explicit value nor the
// environment provides one.
const (
	DefaultHost  = "http://localhost:11434"
	DefaultModel = "llama3"
)

// Config is the resolved Model Client configuration.
type Config struct {
	Host  string
	Model string
}

// Defaults returns the hardcoded fallback configuration.
func Defaults() Config {
	return Config{Host: DefaultHost, Model: DefaultModel}
}

// Env is a snapshot of environment variables.
type Env map[string]string

// EnvFromOS captures the current process environment.
func EnvFromOS() Env {
	return EnvFromList(os.Environ())
}

// EnvFromList builds an Env from KEY=VALUE entries as returned by
// os.Environ. Later entries win.
func EnvFromList(list []string) Env {
	env := make(Env, len(list))
	for _, kv := range list {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}
	return env
}

// Resolve computes the final Config. For each field the first non-empty value
// of explicit, env and defaults wins. Resolve never reads the process
// environment itself.
func Resolve(explicit Config, env Env, defaults Config) Config {
	return Config{
		Host:  first(explicit.Host, env[EnvHost], defaults.Host),
		Model: first(explicit.Model, env[EnvModel], defaults.Model),
	}
}

func first(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
