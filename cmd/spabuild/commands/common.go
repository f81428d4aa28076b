package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/spabuild/internal/args"
	"git.home.luguber.info/inful/spabuild/internal/dispatch"
)

// Global carries per-process state shared by every subcommand.
type Global struct {
	Logger     *slog.Logger
	Dispatcher *dispatch.Dispatcher
	Out        io.Writer

	// RawArgs is the full argument vector after the program name.
	RawArgs []string
	// Passthrough holds the tokens after "--", destined for the engine.
	Passthrough []string
}

// CLI definition & global flags.
type CLI struct {
	ProjectDir  string           `short:"C" name:"project-dir" help:"Project root directory" default:"." type:"existingdir"`
	LogLevel    string           `name:"log-level" help:"Log level (debug, info, warn, error)" default:"info" env:"SPABUILD_LOG_LEVEL"`
	Debug       bool             `help:"Shorthand for --log-level=debug with verbose error output"`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus metrics to this file on exit" type:"path"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Build the project for production"`
	Serve   ServeCmd   `cmd:"" help:"Start the development server"`
	Inspect InspectCmd `cmd:"" help:"Print the resolved build configuration"`
	Init    InitCmd    `cmd:"" help:"Write an example spabuild.yaml"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level, err := ParseLogLevel(c.LogLevel, c.Debug)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// ParseLogLevel maps a level name to a slog.Level. debug overrides name.
func ParseLogLevel(name string, debug bool) (slog.Level, error) {
	if debug {
		return slog.LevelDebug, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", name)
	}
	return level, nil
}

// SplitPassthrough separates the arguments kong parses from the tokens
// after the first "--".
func SplitPassthrough(argv []string) (own, passthrough []string) {
	for i, tok := range argv {
		if tok == "--" {
			return argv[:i], argv[i+1:]
		}
	}
	return argv, nil
}

func dispatchCommand(g *Global, root *CLI, command, entry string, typed args.Arguments) error {
	a := args.New(command).Merge(args.ParseExtra(g.Passthrough)).Merge(typed)

	d := g.Dispatcher
	if d == nil {
		d = dispatch.New()
	}
	if g.Logger != nil {
		d = d.WithLogger(g.Logger)
	}

	_, err := d.Dispatch(context.Background(), dispatch.Request{
		Root:    root.ProjectDir,
		Command: command,
		Entry:   entry,
		Args:    a,
		RawArgs: g.RawArgs,
	})
	return err
}

func setString(a args.Arguments, name, v string) {
	if v != "" {
		a.Set(name, v)
	}
}

func setTrue(a args.Arguments, name string, v bool) {
	if v {
		a.Set(name, true)
	}
}
