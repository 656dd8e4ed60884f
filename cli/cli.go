// Package cli turns command-line arguments into the file choice and option
// set consumed by the configuration resolver. It only records options the
// user actually supplied; everything else stays absent.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/lixenwraith/pymodule/config"
)

// Invocation is the parsed command line.
type Invocation struct {
	File    config.FileDescriptor
	Options config.CLIOptions
}

// Parse processes args (without the program name).
//
// Flags:
//
//	--config <path>            configuration file (default config.toml)
//	--no-config                do not read a configuration file
//	-v                         show version information
//	--verbose <0..6>           log verbosity
//	--log-prefix, --no-log-prefix
//	--use-string-handler, --no-use-string-handler
//	--param1 <int>, --param2 <int>
//	[input_file] [output_file]
//
// flag.ErrHelp is returned when help was requested. Usage goes to output.
func Parse(name string, args []string, output io.Writer) (*Invocation, error) {
	opts := config.CLIOptions{}
	file := config.DefaultConfigFile

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [options] [input_file] [output_file]\n\n", name)
		fmt.Fprintln(fs.Output(), "Priority: (lowest) defaults -> config file -> environment variables -> CLI options (highest)")
		fmt.Fprintln(fs.Output())
		fs.PrintDefaults()
	}

	// --config and --no-config share one target so the last one given wins
	fs.Func("config", "Name of the configuration file, default is '"+config.DefaultConfigFile+"'", func(s string) error {
		file = s
		return nil
	})
	fs.BoolFunc("no-config", "Do not use a configuration file (only defaults & options)", func(s string) error {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		if b {
			file = ""
		}
		return nil
	})

	fs.BoolFunc("v", "Show version information of the module", setBool(opts, "v", true))

	fs.Func("verbose", "Log verbosity 0..6", setRaw(opts, "verbose"))
	boolPair(fs, opts, "log-prefix", "Prefix log lines with time, level and component")
	boolPair(fs, opts, "use-string-handler", "Capture log lines in memory")

	fs.Func("param1", "Parameter1", setRaw(opts, "param1"))
	fs.Func("param2", "Parameter2", setRaw(opts, "param2"))

	positionals, err := parseInterleaved(fs, args)
	if err != nil {
		return nil, err
	}
	switch len(positionals) {
	case 2:
		opts["output_file"] = config.String(positionals[1])
		fallthrough
	case 1:
		opts["input_file"] = config.String(positionals[0])
	case 0:
	default:
		err := fmt.Errorf("too many positional arguments: %d (at most 2)", len(positionals))
		fmt.Fprintln(fs.Output(), err)
		fs.Usage()
		return nil, err
	}

	return &Invocation{File: config.FileAt(file), Options: opts}, nil
}

// parseInterleaved lets positionals appear between flags, which the flag
// package alone stops at. Everything after "--" is positional.
func parseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	var positionals []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		remaining := fs.Args()
		if len(remaining) == 0 {
			return positionals, nil
		}
		// fs.Parse consumed a "--" terminator if len(rest) - len(remaining)
		// ends on it; in that case every remaining argument is positional.
		consumed := len(rest) - len(remaining)
		if consumed > 0 && rest[consumed-1] == "--" {
			return append(positionals, remaining...), nil
		}
		positionals = append(positionals, remaining[0])
		rest = remaining[1:]
	}
}

// setRaw records the option as a string; the resolver coerces it to the
// declared kind and reports a coercion error if that fails.
func setRaw(opts config.CLIOptions, name string) func(string) error {
	return func(s string) error {
		opts[name] = config.String(s)
		return nil
	}
}

// setBool records name as want when the flag is given as true, and as the
// opposite when given as false (e.g. --no-x=false).
func setBool(opts config.CLIOptions, name string, want bool) func(string) error {
	return func(s string) error {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		opts[name] = config.Bool(b == want)
		return nil
	}
}

// boolPair registers --name and --no-name writing the same option.
func boolPair(fs *flag.FlagSet, opts config.CLIOptions, name, usage string) {
	fs.BoolFunc(name, usage, setBool(opts, name, true))
	fs.BoolFunc("no-"+name, "Negates --"+name, setBool(opts, name, false))
}

// IsHelp reports whether err is the help request returned by Parse.
func IsHelp(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
