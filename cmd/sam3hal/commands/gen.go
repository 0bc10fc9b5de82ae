package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/atsam3x/sam3hal/pkg/board"
	"github.com/atsam3x/sam3hal/pkg/gen"
)

type genConfig struct {
	root *rootConfig
	out  io.Writer
	dir  string
	pkg  string
}

func (c *genConfig) Exec(_ context.Context, args []string) error {
	if c.dir == "" {
		return errors.New("-out is required")
	}

	var profiles []board.Profile
	if len(args) == 0 {
		all, err := c.root.allProfiles()
		if err != nil {
			return fail(err)
		}
		profiles = all
	}
	for _, name := range args {
		p, err := c.root.lookupProfile(name)
		if err != nil {
			return err
		}
		profiles = append(profiles, p)
	}

	r, closeLog, err := c.root.newResolver()
	if err != nil {
		return err
	}
	defer closeLog()

	boards := make([]*board.Board, 0, len(profiles))
	for _, p := range profiles {
		b, err := p.Build(r)
		if err != nil {
			return fail(err)
		}
		boards = append(boards, b)
	}

	files, err := gen.Generate(boards, c.pkg)
	if err != nil {
		return err
	}
	if err := gen.WriteFiles(c.dir, files...); err != nil {
		return err
	}
	for _, f := range files {
		fmt.Fprintf(c.out, "wrote %s\n", f.Name)
	}
	return nil
}

func newGenCmd(root *rootConfig, out, errw io.Writer) *ffcli.Command {
	cfg := genConfig{root: root, out: out}

	fs := newFlagSet("gen", root, errw)
	fs.StringVar(&cfg.dir, "out", "", "output directory")
	fs.StringVar(&cfg.pkg, "pkg", "boards", "package name of the generated files")

	return &ffcli.Command{
		Name:       "gen",
		ShortUsage: "sam3hal gen -out dir [-pkg name] [board ...]",
		ShortHelp:  "Generate build-tag gated Go files binding boards to their activations.",
		FlagSet:    fs,
		Options:    root.options(),
		Exec:       cfg.Exec,
	}
}
