package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/atsam3x/sam3hal/pkg/log"
)

type logConfig struct {
	root     *rootConfig
	out      io.Writer
	json     bool
	buildID  string
	board    string
	variant  string
	category string
	since    time.Duration
}

func (c *logConfig) Exec(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("log takes exactly one event file")
	}

	filter := log.Filter{BuildID: c.buildID, Board: c.board, Variant: c.variant}
	if c.category != "" {
		cat, ok := log.ParseCategory(strings.ToUpper(c.category))
		if !ok {
			return fmt.Errorf("unknown category %q", c.category)
		}
		filter.Category = &cat
	}
	if c.since > 0 {
		start := time.Now().Add(-c.since)
		filter.TimeStart = &start
	}

	reader, err := log.NewFilteredReader(args[0], filter)
	if err != nil {
		return err
	}
	defer reader.Close()

	events, err := reader.ReadAll()
	if err != nil {
		return err
	}
	if c.json {
		return writeJSON(c.out, events)
	}
	for _, e := range events {
		fmt.Fprintln(c.out, formatEvent(e))
	}
	return nil
}

func formatEvent(e log.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %-10s", e.Timestamp.Format(time.RFC3339), e.Category)
	if e.Board != "" {
		fmt.Fprintf(&b, " board=%s", e.Board)
	}
	if e.Variant != "" {
		fmt.Fprintf(&b, " variant=%s", e.Variant)
	}
	switch {
	case e.Selection != nil:
		fmt.Fprintf(&b, " runtime=%t", e.Selection.WantsRuntime)
	case e.Activation != nil:
		fmt.Fprintf(&b, " tags=%s pac=%s fp=%s",
			strings.Join(e.Activation.Tags, ","), e.Activation.PAC, e.Activation.Fingerprint)
	case e.Rejection != nil:
		fmt.Fprintf(&b, " kind=%s: %s", e.Rejection.Kind, e.Rejection.Message)
	case e.Check != nil:
		fmt.Fprintf(&b, " %s %s: %s", e.Check.Severity, e.Check.RuleID, e.Check.Message)
	}
	return b.String()
}

func newLogCmd(root *rootConfig, out, errw io.Writer) *ffcli.Command {
	cfg := logConfig{root: root, out: out}

	fs := newFlagSet("log", root, errw)
	fs.BoolVar(&cfg.json, "json", false, "output in json mode")
	fs.StringVar(&cfg.buildID, "build", "", "only events of this build ID")
	fs.StringVar(&cfg.board, "board", "", "only events of this board")
	fs.StringVar(&cfg.variant, "variant", "", "only events of this variant")
	fs.StringVar(&cfg.category, "category", "", "only events of this category (selection, activation, rejection, check)")
	fs.DurationVar(&cfg.since, "since", 0, "only events newer than this")

	return &ffcli.Command{
		Name:       "log",
		ShortUsage: "sam3hal log [filters] <events.cbor>",
		ShortHelp:  "Print a resolution event log written with -log.",
		FlagSet:    fs,
		Options:    root.options(),
		Exec:       cfg.Exec,
	}
}
