// Package cli handles command-line interface concerns.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// Command represents the active subcommand.
type Command string

const (
	CommandNone     Command = ""
	CommandIdentity Command = "identity"
	CommandVersion  Command = "version"
	CommandInspect  Command = "inspect"
)

// Commands lists the subcommands in help order.
var Commands = []Command{CommandIdentity, CommandVersion, CommandInspect}

// ErrUsage marks errors caused by bad command-line input.
var ErrUsage = errors.New("usage error")

// GlobalOptions holds flags available at root level and shared across subcommands.
type GlobalOptions struct {
	Verbose int // -v, -vv
	Quiet   bool
	NoColor bool
	Version bool
	Help    bool

	// Config file path (default: ./apkmeta.yaml if present)
	Config string

	// Overrides for the matching config fields
	Decoder          string
	LauncherCategory string
}

// InspectOptions holds flags specific to the inspect subcommand.
type InspectOptions struct {
	JSON bool // Emit one JSON object per file
}

// Options holds all CLI configuration options.
type Options struct {
	Command Command
	Args    []string // APK paths

	Global  GlobalOptions
	Inspect InspectOptions
}

// ParseArgs parses command-line arguments (without the program name).
// Global flags are accepted both before and after the subcommand.
func ParseArgs(args []string) (*Options, error) {
	opts := &Options{}
	if len(args) == 0 {
		opts.Global.Help = true
		return opts, nil
	}

	root := newFlagSet("apkmeta", opts)
	root.SetInterspersed(false)
	if err := root.Parse(args); err != nil {
		return nil, usageError(err)
	}
	rest := root.Args()
	if opts.Global.Help || opts.Global.Version {
		opts.Args = rest
		return opts, nil
	}
	if len(rest) == 0 {
		opts.Global.Help = true
		return opts, nil
	}

	switch cmd := Command(rest[0]); cmd {
	case CommandIdentity, CommandVersion, CommandInspect:
		opts.Command = cmd
	default:
		return nil, fmt.Errorf("%w: unknown command %q", ErrUsage, rest[0])
	}

	fs := newFlagSet(string(opts.Command), opts)
	if opts.Command == CommandInspect {
		fs.BoolVar(&opts.Inspect.JSON, "json", false, "Emit metadata as JSON")
	}
	if err := fs.Parse(rest[1:]); err != nil {
		return nil, usageError(err)
	}
	opts.Args = fs.Args()

	if opts.Global.Help {
		return opts, nil
	}
	if len(opts.Args) == 0 {
		return nil, fmt.Errorf("%w: %s requires at least one APK file", ErrUsage, opts.Command)
	}
	if opts.Global.Quiet && opts.Global.Verbose > 0 {
		return nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}
	return opts, nil
}

// newFlagSet returns a flag set with the global flags bound to opts.
func newFlagSet(name string, opts *Options) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	g := &opts.Global
	fs.BoolVarP(&g.Help, "help", "h", g.Help, "Show help")
	fs.BoolVar(&g.Version, "version", g.Version, "Show version")
	verbose := g.Verbose
	fs.CountVarP(&g.Verbose, "verbose", "v", "Verbose output (repeat for debug)")
	g.Verbose = verbose // CountVarP resets the target
	fs.BoolVarP(&g.Quiet, "quiet", "q", g.Quiet, "Results and errors only")
	fs.BoolVar(&g.NoColor, "no-color", g.NoColor, "Disable colored output")
	fs.StringVarP(&g.Config, "config", "c", g.Config, "Config file path")
	fs.StringVar(&g.Decoder, "decoder", g.Decoder, "Manifest decoder: apkparser, androidbinary, text")
	fs.StringVar(&g.LauncherCategory, "launcher-category", g.LauncherCategory, "Category marking the launch activity")
	return fs
}

func usageError(err error) error {
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// Verbosity maps the verbosity flags to a ui verbosity level.
func (g GlobalOptions) Verbosity() int {
	if g.Quiet {
		return -1
	}
	return g.Verbose
}
