// sam3hal selects SAM3A/SAM3X variants, resolves their capability tags and
// generates the build-tag files that bind boards to them.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/atsam3x/sam3hal/cmd/sam3hal/commands"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	code := commands.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
