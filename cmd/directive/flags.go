package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/germanamz/directive/pkg/config"
	"github.com/germanamz/directive/pkg/modelclient"
)

// streams carries the process I/O so commands can be run from tests.
type streams struct {
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	environ []string
}

// usageError marks bad command-line input.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

// commonFlags are shared by the default command and the mcp subcommand.
type commonFlags struct {
	envFile    string
	configFile string
	host       string
	model      string
	verbose    bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.envFile, "env", ".env", "path to .env file (ignored if missing)")
	fs.StringVar(&c.configFile, "config", "", "path to configuration file (default: "+config.DefaultFile+", ignored if missing)")
	fs.StringVar(&c.host, "host", "", "Ollama host, overrides $"+modelclient.EnvHost)
	fs.StringVar(&c.model, "model", "", "model name, overrides $"+modelclient.EnvModel)
	fs.BoolVar(&c.verbose, "verbose", false, "log debug details to stderr")
}

func (c *commonFlags) sources(environ []string) config.Sources {
	return config.Sources{
		EnvFile:        c.envFile,
		ConfigFile:     c.configFile,
		ConfigRequired: c.configFile != "",
		Environ:        environ,
		Explicit:       modelclient.Config{Host: c.host, Model: c.model},
		Verbose:        c.verbose,
	}
}

func newFlagSet(name, usage string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	return fs
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isattyFd(f.Fd())
}
