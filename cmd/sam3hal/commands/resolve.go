package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/atsam3x/sam3hal/pkg/facade"
	"github.com/atsam3x/sam3hal/pkg/ledger"
	"github.com/atsam3x/sam3hal/pkg/resolve"
)

type resolveConfig struct {
	root    *rootConfig
	out     io.Writer
	runtime bool
	json    bool
	ledger  string
	unit    string
}

func (c *resolveConfig) Exec(_ context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("resolve needs at least one selection")
	}
	if c.ledger != "" && c.unit == "" {
		return errors.New("-ledger needs -unit")
	}

	sels := make([]resolve.Selection, len(args))
	for i, arg := range args {
		sel, err := resolve.ParseSelection(arg)
		if err != nil {
			return err
		}
		if c.runtime {
			sel.WantsRuntime = true
		}
		sels[i] = sel
	}

	r, closeLog, err := c.root.newResolver()
	if err != nil {
		return err
	}
	defer closeLog()

	act, err := r.ResolveBuild(sels...)
	if err != nil {
		return fail(err)
	}
	f, err := facade.Compose(act)
	if err != nil {
		return fail(err)
	}

	if c.ledger != "" {
		l, err := ledger.NewStore(c.ledger).Record(c.unit, act)
		if err != nil {
			if errors.Is(err, resolve.ErrConflictingVariants) {
				return fail(err)
			}
			return err
		}
		if !c.json {
			fmt.Fprintf(c.out, "Ledger:      %s (build %s, %d units)\n", c.ledger, l.BuildID, len(l.Units))
		}
	}

	if c.json {
		return writeJSON(c.out, activationOutput(act, f))
	}
	printActivation(c.out, act, f)
	return nil
}

func newResolveCmd(root *rootConfig, out, errw io.Writer) *ffcli.Command {
	cfg := resolveConfig{root: root, out: out}

	fs := newFlagSet("resolve", root, errw)
	fs.BoolVar(&cfg.runtime, "rt", false, "request the runtime shim for every selection")
	fs.BoolVar(&cfg.json, "json", false, "output in json mode")
	fs.StringVar(&cfg.ledger, "ledger", "", "record the activation in this build ledger")
	fs.StringVar(&cfg.unit, "unit", "", "compile unit name recorded in the ledger")

	return &ffcli.Command{
		Name:       "resolve",
		ShortUsage: "sam3hal resolve [-rt] [-json] [-ledger file -unit name] <variant>[+rt] ...",
		ShortHelp:  "Resolve the selections of one build to an activated tag set.",
		LongHelp: `Every argument is one compile unit's selection. All of them must agree:
naming two different variants, or one variant with and without +rt,
fails with ConflictingVariants.`,
		FlagSet: fs,
		Options: root.options(),
		Exec:    cfg.Exec,
	}
}
