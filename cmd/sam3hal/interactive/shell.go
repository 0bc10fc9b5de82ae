// Package interactive provides the sam3hal interactive shell.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/atsam3x/sam3hal/pkg/board"
	"github.com/atsam3x/sam3hal/pkg/facade"
	"github.com/atsam3x/sam3hal/pkg/resolve"
)

// Shell explores variants, selections and boards against one resolver.
type Shell struct {
	resolver *resolve.Resolver
	profiles []board.Profile
	out      io.Writer

	// Selections collected with "select" and resolved together by "build".
	pending []resolve.Selection
}

// New creates a shell writing to out.
func New(r *resolve.Resolver, profiles []board.Profile, out io.Writer) *Shell {
	return &Shell{resolver: r, profiles: profiles, out: out}
}

func (s *Shell) completer() *readline.PrefixCompleter {
	variants := func(string) []string { return s.resolver.Table().IDs() }
	boards := func(string) []string {
		names := make([]string, len(s.profiles))
		for i, p := range s.profiles {
			names[i] = p.Name
		}
		return names
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("list"),
		readline.PcItem("describe", readline.PcItemDynamic(variants)),
		readline.PcItem("resolve", readline.PcItemDynamic(variants)),
		readline.PcItem("select", readline.PcItemDynamic(variants)),
		readline.PcItem("pending"),
		readline.PcItem("build"),
		readline.PcItem("clear"),
		readline.PcItem("boards"),
		readline.PcItem("board", readline.PcItemDynamic(boards)),
		readline.PcItem("quit"),
	)
}

// Run reads commands from in until quit, EOF or ctx is done.
func (s *Shell) Run(ctx context.Context, in io.ReadCloser) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "sam3hal> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    s.completer(),
		Stdin:           in,
		Stdout:          s.out,
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	s.out = rl.Stdout()
	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			return nil
		}
		if s.Exec(line) {
			return nil
		}
	}
}

// Exec runs one command line and reports whether the shell should exit.
func (s *Shell) Exec(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()
	case "list", "l":
		s.cmdList()
	case "describe", "d":
		s.cmdDescribe(args)
	case "resolve", "r":
		s.cmdResolve(args)
	case "select", "s":
		s.cmdSelect(args)
	case "pending", "p":
		s.cmdPending()
	case "build", "b":
		s.cmdBuild()
	case "clear":
		s.pending = nil
		fmt.Fprintln(s.out, "Cleared pending selections")
	case "boards":
		s.cmdBoards()
	case "board":
		s.cmdBoard(args)
	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Exiting...")
		return true
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
sam3hal Commands:
  Variants:
    list                  - List supported variants
    describe <variant>    - Show tags, PAC and modules of a variant
    resolve <sel>...      - Resolve selections (variant or variant+rt)

  Builds:
    select <sel>          - Add a compile unit's selection to the pending build
    pending               - Show pending selections
    build                 - Resolve the pending build
    clear                 - Drop pending selections

  Boards:
    boards                - List board profiles
    board <name>          - Build a board profile

  General:
    help                  - Show this help
    quit                  - Exit`)
}

func (s *Shell) cmdList() {
	for _, v := range s.resolver.Table().All() {
		fmt.Fprintf(s.out, "  %-8s %-40s %s\n", v.ID, v.Tags, v.PAC.Name)
	}
}

func (s *Shell) cmdDescribe(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: describe <variant>")
		return
	}
	v, err := s.resolver.Table().Describe(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "%s: %s, %d pins, PAC %s\n", v.ID, v.Tags, v.Pins, v.PAC.Name)
	groups := make([]string, 0, 6)
	for _, g := range v.PIOGroups() {
		groups = append(groups, g.String())
	}
	fmt.Fprintf(s.out, "  PIO: %s\n", strings.Join(groups, ", "))
	if v.SupportsRuntime() {
		fmt.Fprintf(s.out, "  Runtime entry: %s\n", v.PAC.RuntimeEntry)
	} else {
		fmt.Fprintln(s.out, "  No runtime entry")
	}
}

func (s *Shell) parseSelections(args []string) ([]resolve.Selection, bool) {
	sels := make([]resolve.Selection, 0, len(args))
	for _, arg := range args {
		sel, err := resolve.ParseSelection(arg)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return nil, false
		}
		sels = append(sels, sel)
	}
	return sels, true
}

func (s *Shell) cmdResolve(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, "Usage: resolve <variant>[+rt] ...")
		return
	}
	sels, ok := s.parseSelections(args)
	if !ok {
		return
	}
	s.printBuild(s.resolver.ResolveBuild(sels...))
}

func (s *Shell) cmdSelect(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: select <variant>[+rt]")
		return
	}
	sels, ok := s.parseSelections(args)
	if !ok {
		return
	}
	s.pending = append(s.pending, sels...)
	fmt.Fprintf(s.out, "Pending: %d selection(s)\n", len(s.pending))
}

func (s *Shell) cmdPending() {
	if len(s.pending) == 0 {
		fmt.Fprintln(s.out, "No pending selections")
		return
	}
	for i, sel := range s.pending {
		fmt.Fprintf(s.out, "  %d. %s\n", i+1, sel)
	}
}

func (s *Shell) cmdBuild() {
	if len(s.pending) == 0 {
		fmt.Fprintln(s.out, "No pending selections (use 'select')")
		return
	}
	s.printBuild(s.resolver.ResolveBuild(s.pending...))
}

func (s *Shell) printBuild(act resolve.Activation, err error) {
	if err != nil {
		fmt.Fprintf(s.out, "%s: %v\n", resolve.Kind(err), err)
		return
	}
	f, err := facade.Compose(act)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "%s\n  modules: %s\n  flags:   %s\n",
		act, strings.Join(f.Modules(), ", "), act.GoFlags())
}

func (s *Shell) cmdBoards() {
	for _, p := range s.profiles {
		fmt.Fprintf(s.out, "  %-12s %-14s panic=%s\n", p.Name, p.Selection(), p.Panic)
	}
}

func (s *Shell) cmdBoard(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: board <name>")
		return
	}
	for _, p := range s.profiles {
		if p.Name != args[0] {
			continue
		}
		b, err := p.Build(s.resolver)
		if err != nil {
			fmt.Fprintf(s.out, "%s: %v\n", resolve.Kind(err), err)
			return
		}
		fmt.Fprintf(s.out, "%s (panic %s)\n", b.Name(), b.PanicStrategy())
		fmt.Fprintf(s.out, "  modules: %s\n  flags:   %s\n", strings.Join(b.Facade().Modules(), ", "), b.GoFlags())
		return
	}
	fmt.Fprintf(s.out, "Unknown board: %s\n", args[0])
}
