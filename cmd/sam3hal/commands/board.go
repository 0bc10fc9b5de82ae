package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/peterbourgon/ff/v3/ffcli"
)

type boardConfig struct {
	root *rootConfig
	out  io.Writer
	json bool
}

// BoardOutput is the JSON form of a built board.
type BoardOutput struct {
	Name          string           `json:"name"`
	PanicStrategy string           `json:"panic_strategy"`
	Freestanding  bool             `json:"freestanding"`
	Tag           string           `json:"tag"`
	GoFlags       string           `json:"go_flags"`
	Activation    ActivationOutput `json:"activation"`
}

func (c *boardConfig) Exec(_ context.Context, args []string) error {
	switch len(args) {
	case 0:
		return c.list()
	case 1:
	default:
		return errors.New("board takes at most one board name")
	}

	p, err := c.root.lookupProfile(args[0])
	if err != nil {
		return err
	}
	r, closeLog, err := c.root.newResolver()
	if err != nil {
		return err
	}
	defer closeLog()

	b, err := p.Build(r)
	if err != nil {
		return fail(err)
	}

	if c.json {
		return writeJSON(c.out, BoardOutput{
			Name:          b.Name(),
			PanicStrategy: b.PanicStrategy().String(),
			Freestanding:  b.Profile().IsFreestanding(),
			Tag:           b.Tag(),
			GoFlags:       b.GoFlags(),
			Activation:    activationOutput(b.Activation(), b.Facade()),
		})
	}
	fmt.Fprintf(c.out, "Board:       %s\n", b.Name())
	fmt.Fprintf(c.out, "Panic:       %s\n", b.PanicStrategy())
	fmt.Fprintf(c.out, "Freestanding: %t\n", b.Profile().IsFreestanding())
	printActivation(c.out, b.Activation(), b.Facade())
	fmt.Fprintf(c.out, "Board flags: %s\n", b.GoFlags())
	return nil
}

func (c *boardConfig) list() error {
	profiles, err := c.root.allProfiles()
	if err != nil {
		return fail(err)
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BOARD\tSELECTION\tPANIC\tFEATURES")
	for _, p := range profiles {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Name, p.Selection(), p.Panic, p.Features)
	}
	return tw.Flush()
}

func newBoardCmd(root *rootConfig, out, errw io.Writer) *ffcli.Command {
	cfg := boardConfig{root: root, out: out}

	fs := newFlagSet("board", root, errw)
	fs.BoolVar(&cfg.json, "json", false, "output in json mode")

	return &ffcli.Command{
		Name:       "board",
		ShortUsage: "sam3hal board [-profiles file] [-json] [name]",
		ShortHelp:  "List board profiles, or build one and show its activation.",
		FlagSet:    fs,
		Options:    root.options(),
		Exec:       cfg.Exec,
	}
}
