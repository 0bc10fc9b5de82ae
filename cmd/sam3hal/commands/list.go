package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/peterbourgon/ff/v3/ffcli"
)

type listConfig struct {
	root *rootConfig
	out  io.Writer
	json bool
}

func (c *listConfig) Exec(_ context.Context, _ []string) error {
	table, err := c.root.loadTable()
	if err != nil {
		return err
	}

	if c.json {
		out := make([]VariantOutput, 0, table.Len())
		for _, v := range table.All() {
			out = append(out, variantOutput(v, false))
		}
		return writeJSON(c.out, out)
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VARIANT\tTAGS\tPINS\tPAC\tRUNTIME")
	for _, v := range table.All() {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%t\n", v.ID, v.Tags, v.Pins, v.PAC.Name, v.SupportsRuntime())
	}
	return tw.Flush()
}

func newListCmd(root *rootConfig, out, errw io.Writer) *ffcli.Command {
	cfg := listConfig{root: root, out: out}

	fs := newFlagSet("list", root, errw)
	fs.BoolVar(&cfg.json, "json", false, "output in json mode")

	return &ffcli.Command{
		Name:       "list",
		ShortUsage: "sam3hal list [-json]",
		ShortHelp:  "List the supported variants and their intrinsic tags.",
		FlagSet:    fs,
		Options:    root.options(),
		Exec:       cfg.Exec,
	}
}
