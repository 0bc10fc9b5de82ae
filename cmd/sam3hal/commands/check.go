package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/atsam3x/sam3hal/pkg/selfcheck"
	"github.com/atsam3x/sam3hal/pkg/selfcheck/rules"
)

// stringsFlag collects repeated flag values.
type stringsFlag []string

func (s *stringsFlag) String() string     { return strings.Join(*s, ",") }
func (s *stringsFlag) Set(v string) error { *s = append(*s, v); return nil }

type checkConfig struct {
	root    *rootConfig
	out     io.Writer
	json    bool
	strict  bool
	verbose bool
	rules   stringsFlag
}

// CheckOutput is the JSON form of a self-check result.
type CheckOutput struct {
	Valid    bool          `json:"valid"`
	Errors   []IssueOutput `json:"errors,omitempty"`
	Warnings []IssueOutput `json:"warnings,omitempty"`
	Infos    []IssueOutput `json:"infos,omitempty"`
}

// IssueOutput is one violation.
type IssueOutput struct {
	Rule       string   `json:"rule"`
	Message    string   `json:"message"`
	Variants   []string `json:"variants,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
}

func issues(vs []selfcheck.Violation) []IssueOutput {
	out := make([]IssueOutput, len(vs))
	for i, v := range vs {
		out[i] = IssueOutput{Rule: v.RuleID, Message: v.Message, Variants: v.Variants, Suggestion: v.Suggestion}
	}
	return out
}

func (c *checkConfig) Exec(_ context.Context, _ []string) error {
	table, err := c.root.loadTable()
	if err != nil {
		return fail(err)
	}

	registry := rules.NewDefaultRegistry()
	if err := registry.Apply(c.rules...); err != nil {
		return err
	}
	result := selfcheck.Validate(table, registry)
	valid := result.Valid && !(c.strict && len(result.Warnings) > 0)

	if c.json {
		if err := writeJSON(c.out, CheckOutput{
			Valid:    valid,
			Errors:   issues(result.Errors),
			Warnings: issues(result.Warnings),
			Infos:    issues(result.Infos),
		}); err != nil {
			return err
		}
	} else {
		for _, v := range result.Errors {
			fmt.Fprintf(c.out, "  %s\n", v)
		}
		for _, v := range result.Warnings {
			fmt.Fprintf(c.out, "  %s\n", v)
		}
		if c.verbose {
			for _, v := range result.Infos {
				fmt.Fprintf(c.out, "  %s\n", v)
			}
		}
		if valid {
			fmt.Fprintf(c.out, "OK: %d variants, %d rules\n", table.Len(), registry.Count())
		}
	}

	if !valid {
		return fail(fmt.Errorf("self-check failed: %d errors, %d warnings", len(result.Errors), len(result.Warnings)))
	}
	return nil
}

func newCheckCmd(root *rootConfig, out, errw io.Writer) *ffcli.Command {
	cfg := checkConfig{root: root, out: out}

	fs := newFlagSet("check", root, errw)
	fs.BoolVar(&cfg.json, "json", false, "output in json mode")
	fs.BoolVar(&cfg.strict, "strict", false, "treat warnings as errors")
	fs.BoolVar(&cfg.verbose, "verbose", false, "also print informational notes")
	fs.Var(&cfg.rules, "rule", "override a rule, e.g. PIN-002=off or PIN-002=error (repeatable)")

	return &ffcli.Command{
		Name:       "check",
		ShortUsage: "sam3hal check [-table file] [-strict] [-rule ID=setting ...]",
		ShortHelp:  "Run the descriptor self-check rules against a variant table.",
		FlagSet:    fs,
		Options:    root.options(),
		Exec:       cfg.Exec,
	}
}
