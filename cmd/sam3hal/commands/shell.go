package commands

import (
	"context"
	"io"

	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/atsam3x/sam3hal/cmd/sam3hal/interactive"
)

type shellConfig struct {
	root *rootConfig
	in   io.Reader
	out  io.Writer
}

func (c *shellConfig) Exec(ctx context.Context, _ []string) error {
	r, closeLog, err := c.root.newResolver()
	if err != nil {
		return err
	}
	defer closeLog()

	profiles, err := c.root.allProfiles()
	if err != nil {
		return err
	}

	in, ok := c.in.(io.ReadCloser)
	if !ok {
		in = io.NopCloser(c.in)
	}
	return interactive.New(r, profiles, c.out).Run(ctx, in)
}

func newShellCmd(root *rootConfig, in io.Reader, out, errw io.Writer) *ffcli.Command {
	cfg := shellConfig{root: root, in: in, out: out}

	return &ffcli.Command{
		Name:       "shell",
		ShortUsage: "sam3hal shell",
		ShortHelp:  "Explore variants, builds and boards interactively.",
		FlagSet:    newFlagSet("shell", root, errw),
		Options:    root.options(),
		Exec:       cfg.Exec,
	}
}
