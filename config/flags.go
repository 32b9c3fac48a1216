package config

import (
	"flag"
	"io"
)

// Options command line options.
type Options struct {
	// ConfigPath yaml config, defaults are used when empty.
	ConfigPath string
	// Setup run the configuration wizard before starting.
	Setup bool
}

// ParseFlags parses args (without the program name).
func ParseFlags(args []string) (Options, error) {
	var opts Options

	fs := flag.NewFlagSet("marti-upbit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.ConfigPath, "config", "", "path to yaml config")
	fs.BoolVar(&opts.Setup, "setup", false, "run the configuration wizard")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	return opts, nil
}
