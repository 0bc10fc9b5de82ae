// Package commands implements the sam3hal subcommands.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/atsam3x/sam3hal/pkg/board"
	"github.com/atsam3x/sam3hal/pkg/chip"
	"github.com/atsam3x/sam3hal/pkg/log"
	"github.com/atsam3x/sam3hal/pkg/resolve"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitValidation   = 2
)

// EnvPrefix prefixes environment variables that set flags, e.g.
// SAM3HAL_TABLE for -table.
const EnvPrefix = "SAM3HAL"

// failure marks an error as a resolution or validation failure (exit 2)
// rather than a usage or I/O error (exit 1).
type failure struct{ err error }

func (f *failure) Error() string { return f.err.Error() }
func (f *failure) Unwrap() error { return f.err }

func fail(err error) error {
	if err == nil {
		return nil
	}
	return &failure{err: err}
}

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	var f *failure
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return exitSuccess
	case errors.As(err, &f):
		return exitValidation
	default:
		return exitCommandError
	}
}

type rootConfig struct {
	verbose  bool
	table    string
	profiles string
	logFile  string
	stderr   io.Writer
}

func (c *rootConfig) registerFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.verbose, "v", false, "log resolution events to stderr")
	fs.StringVar(&c.table, "table", "", "YAML variant table replacing the built-in one")
	fs.StringVar(&c.profiles, "profiles", "", "YAML file with additional board profiles")
	fs.StringVar(&c.logFile, "log", "", "append resolution events to this CBOR file")
	fs.String("config", "", "config file with one flag per line (name value)")
}

func (c *rootConfig) options() []ff.Option {
	return []ff.Option{
		ff.WithEnvVarPrefix(EnvPrefix),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
		ff.WithIgnoreUndefined(true),
	}
}

func (c *rootConfig) Exec(context.Context, []string) error {
	return errors.New("no command given, see -h")
}

// loadTable returns the -table file or the built-in table.
func (c *rootConfig) loadTable() (*chip.Table, error) {
	if c.table == "" {
		return chip.Default(), nil
	}
	return chip.LoadTableYAML(c.table)
}

// newResolver builds a resolver wired to the configured loggers. The
// returned function closes the event log.
func (c *rootConfig) newResolver() (*resolve.Resolver, func() error, error) {
	table, err := c.loadTable()
	if err != nil {
		return nil, nil, err
	}

	var loggers []log.Logger
	closeLog := func() error { return nil }
	if c.verbose {
		h := slog.NewTextHandler(c.stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		loggers = append(loggers, log.NewSlogAdapter(slog.New(h)))
	}
	if c.logFile != "" {
		fl, err := log.NewFileLogger(c.logFile)
		if err != nil {
			return nil, nil, fmt.Errorf("open event log: %w", err)
		}
		loggers = append(loggers, fl)
		closeLog = func() error {
			if err := fl.Err(); err != nil {
				fl.Close()
				return fmt.Errorf("write event log: %w", err)
			}
			return fl.Close()
		}
	}

	r, err := resolve.New(table, resolve.Config{Logger: log.NewMultiLogger(loggers...)})
	if err != nil {
		closeLog()
		return nil, nil, fail(err)
	}
	return r, closeLog, nil
}

// allProfiles returns the -profiles file entries followed by the built-in
// profiles they do not shadow.
func (c *rootConfig) allProfiles() ([]board.Profile, error) {
	var out []board.Profile
	seen := make(map[string]bool)
	if c.profiles != "" {
		loaded, err := board.LoadProfilesYAML(c.profiles)
		if errors.Is(err, board.ErrInvalidProfile) || errors.Is(err, board.ErrNoPanicStrategy) {
			return nil, fail(err)
		}
		if err != nil {
			return nil, err
		}
		for _, p := range loaded {
			seen[p.Name] = true
			out = append(out, p)
		}
	}
	for _, p := range board.Profiles() {
		if !seen[p.Name] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *rootConfig) lookupProfile(name string) (board.Profile, error) {
	profiles, err := c.allProfiles()
	if err != nil {
		return board.Profile{}, err
	}
	names := make([]string, len(profiles))
	for i, p := range profiles {
		if p.Name == name {
			return p, nil
		}
		names[i] = p.Name
	}
	return board.Profile{}, fmt.Errorf("%w: %q (known: %s)", board.ErrUnknownBoard, name, strings.Join(names, ", "))
}

// newFlagSet creates a subcommand flag set that also accepts the root flags.
func newFlagSet(name string, root *rootConfig, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("sam3hal "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	root.registerFlags(fs)
	return fs
}

// NewRootCommand builds the sam3hal command tree.
func NewRootCommand(stdin io.Reader, stdout, stderr io.Writer) *ffcli.Command {
	cfg := &rootConfig{stderr: stderr}

	fs := flag.NewFlagSet("sam3hal", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "sam3hal",
		ShortUsage: "sam3hal [flags] <subcommand> [flags] [args...]",
		ShortHelp:  "Select SAM3A/SAM3X variants and compose their capability tags.",
		LongHelp: `Flags may also be set through the environment (` + EnvPrefix + `_TABLE, ` + EnvPrefix + `_LOG, ...)
or a config file given with -config.

Exit status is 0 on success, 1 on usage or I/O errors, and 2 when a
selection fails to resolve or a table or profile fails validation.`,
		FlagSet: fs,
		Options: cfg.options(),
		Exec:    cfg.Exec,
		Subcommands: []*ffcli.Command{
			newListCmd(cfg, stdout, stderr),
			newDescribeCmd(cfg, stdout, stderr),
			newResolveCmd(cfg, stdout, stderr),
			newCheckCmd(cfg, stdout, stderr),
			newBoardCmd(cfg, stdout, stderr),
			newGenCmd(cfg, stdout, stderr),
			newLogCmd(cfg, stdout, stderr),
			newShellCmd(cfg, stdin, stdout, stderr),
		},
	}
}

// Run parses args, runs the selected subcommand and returns the exit code.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCommand(stdin, stdout, stderr)
	err := root.ParseAndRun(ctx, args)
	if err != nil && !errors.Is(err, flag.ErrHelp) && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(stderr, "sam3hal: %v\n", err)
	}
	return ExitCode(err)
}
