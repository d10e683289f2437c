package cli

import (
	"context"
	"log"
)

// Root runs the REPL on the app's input until the user exits.
func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to Falimatik CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}
