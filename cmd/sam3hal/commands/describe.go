package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/atsam3x/sam3hal/pkg/facade"
	"github.com/atsam3x/sam3hal/pkg/resolve"
)

type describeConfig struct {
	root *rootConfig
	out  io.Writer
	json bool
}

func (c *describeConfig) Exec(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("describe takes exactly one variant")
	}

	r, closeLog, err := c.root.newResolver()
	if err != nil {
		return err
	}
	defer closeLog()

	v, err := r.Table().Describe(args[0])
	if err != nil {
		return fail(err)
	}
	act, err := r.Resolve(resolve.Selection{Variant: v.ID})
	if err != nil {
		return fail(err)
	}
	f, err := facade.Compose(act)
	if err != nil {
		return fail(err)
	}

	out := variantOutput(v, true)
	out.Modules = f.Modules()
	if c.json {
		return writeJSON(c.out, out)
	}

	fmt.Fprintf(c.out, "Variant:     %s\n", out.ID)
	fmt.Fprintf(c.out, "Tags:        %s\n", v.Tags)
	fmt.Fprintf(c.out, "Pins:        %d\n", out.Pins)
	fmt.Fprintf(c.out, "PAC:         %s %s (%s)\n", out.PAC, v.PAC.Version, out.PACImport)
	if out.Runtime {
		fmt.Fprintf(c.out, "Runtime:     yes (entry %s)\n", v.PAC.RuntimeEntry)
	} else {
		fmt.Fprintln(c.out, "Runtime:     no")
	}
	fmt.Fprintf(c.out, "PIO:         %s\n", strings.Join(out.PIOGroups, ", "))
	fmt.Fprintf(c.out, "Peripherals: %s\n", strings.Join(out.Peripherals, ", "))
	fmt.Fprintf(c.out, "Modules:     %s\n", strings.Join(out.Modules, ", "))
	return nil
}

func newDescribeCmd(root *rootConfig, out, errw io.Writer) *ffcli.Command {
	cfg := describeConfig{root: root, out: out}

	fs := newFlagSet("describe", root, errw)
	fs.BoolVar(&cfg.json, "json", false, "output in json mode")

	return &ffcli.Command{
		Name:       "describe",
		ShortUsage: "sam3hal describe [-json] <variant>",
		ShortHelp:  "Show a variant's tags, PAC, peripherals and facade modules.",
		FlagSet:    fs,
		Options:    root.options(),
		Exec:       cfg.Exec,
	}
}
