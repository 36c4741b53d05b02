// Package config resolves the settings of one directive run from the
// command line, an optional .env file, the process environment, an optional
// YAML file and hardcoded defaults. It is invoked once at program start.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/germanamz/directive/pkg/directive"
	"github.com/germanamz/directive/pkg/logging"
	"github.com/germanamz/directive/pkg/modelclient"
)

// DefaultFile is the YAML configuration read when no -config flag is given.
const DefaultFile = "directive.yaml"

// File is the on-disk YAML configuration.
type File struct {
	Ollama    OllamaConfig    `yaml:"ollama"`
	Directive DirectiveConfig `yaml:"directive"`
	Prompt    PromptConfig    `yaml:"prompt"`
	Output    OutputConfig    `yaml:"output"`
	Log       LogConfig       `yaml:"log"`
}

// OllamaConfig holds model endpoint settings. They rank below the
// environment and above the hardcoded defaults.
type OllamaConfig struct {
	Host  string `yaml:"host"`
	Model string `yaml:"model"`
}

// DirectiveConfig holds directive file settings.
type DirectiveConfig struct {
	Path string `yaml:"path"` // Directive used when no positional argument is given.
}

// PromptConfig holds prompt template settings.
type PromptConfig struct {
	TemplateFile string `yaml:"template_file"` // Custom text/template; empty means built-in.
}

// OutputConfig holds terminal output settings.
type OutputConfig struct {
	Render bool `yaml:"render"` // Render the reply as markdown.
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level   string `yaml:"level"`   // debug, info, warn or error.
	File    string `yaml:"file"`    // Optional JSON log file.
	Journal bool   `yaml:"journal"` // Also log to the systemd journal.
}

// Sources describes where settings come from. Explicit values override
// everything else.
type Sources struct {
	EnvFile        string             // .env path; a missing file is ignored.
	ConfigFile     string             // YAML path; defaults to DefaultFile.
	ConfigRequired bool               // Fail when ConfigFile is missing.
	Environ        []string           // Process environment, as from os.Environ.
	Explicit       modelclient.Config // Command-line host and model.
	DirectivePath  string             // Positional argument.
	Render         bool               // -render flag.
	Verbose        bool               // -verbose flag.
}

// Settings is the fully resolved configuration of one run.
type Settings struct {
	Model          modelclient.Config
	DirectivePath  string
	PromptTemplate string
	Render         bool
	Log            logging.Options
}

// LoadDotEnv reads KEY=VALUE pairs from path without touching the process
// environment. A missing file yields an empty map.
func LoadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}

	vals, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: load env file: %w", err)
	}

	return vals, nil
}

// LoadFile reads a YAML configuration file. ${VAR} and $VAR references are
// expanded from env before parsing, across the whole document. Unset
// variables expand to "". Write $$ for a literal $.
func LoadFile(path string, env modelclient.Env) (File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration
	if err != nil {
		return File{}, fmt.Errorf("config: load file: %w", err)
	}

	expanded := os.Expand(string(data), func(key string) string {
		if key == "$" {
			return "$"
		}
		return env[key]
	})

	var f File
	if err := yaml.Unmarshal([]byte(expanded), &f); err != nil {
		return File{}, fmt.Errorf("config: parse file: %w", err)
	}

	return f, nil
}

// Environment merges dotenv values under the process environment: a
// variable already set in environ wins over the .env file.
func Environment(dotenv map[string]string, environ []string) modelclient.Env {
	env := modelclient.EnvFromList(environ)
	for k, v := range dotenv {
		if _, set := env[k]; !set {
			env[k] = v
		}
	}
	return env
}

// Load resolves Settings from src. Model settings follow
// explicit > environment > file > hardcoded default.
func Load(src Sources) (Settings, error) {
	dotenv, err := LoadDotEnv(src.EnvFile)
	if err != nil {
		return Settings{}, err
	}

	env := Environment(dotenv, src.Environ)

	path := src.ConfigFile
	if path == "" {
		path = DefaultFile
	}

	f, err := LoadFile(path, env)
	if errors.Is(err, fs.ErrNotExist) && !src.ConfigRequired {
		f, err = File{}, nil
	}
	if err != nil {
		return Settings{}, err
	}

	return resolve(src, env, f)
}

func resolve(src Sources, env modelclient.Env, f File) (Settings, error) {
	defaults := modelclient.Resolve(modelclient.Config{Host: f.Ollama.Host, Model: f.Ollama.Model}, nil, modelclient.Defaults())

	s := Settings{
		Model:          modelclient.Resolve(src.Explicit, env, defaults),
		DirectivePath:  first(src.DirectivePath, f.Directive.Path, directive.DefaultPath),
		PromptTemplate: f.Prompt.TemplateFile,
		Render:         src.Render || f.Output.Render,
		Log: logging.Options{
			Level:   slog.LevelWarn,
			File:    f.Log.File,
			Journal: f.Log.Journal,
		},
	}

	if f.Log.Level != "" {
		if err := s.Log.Level.UnmarshalText([]byte(f.Log.Level)); err != nil {
			return Settings{}, fmt.Errorf("config: log level %q: %w", f.Log.Level, err)
		}
	}
	if src.Verbose {
		s.Log.Level = slog.LevelDebug
	}

	return s, nil
}

func first(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
