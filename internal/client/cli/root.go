package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

// Root starts the interactive session: try to resume a remembered session,
// then hand control to the REPL.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to logingate (type 'help' for commands)")

	a.resume(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
