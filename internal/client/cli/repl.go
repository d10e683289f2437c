package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Signin(ctx context.Context) error
	Verify(ctx context.Context, token string) error
	Resend(ctx context.Context) error
	Me(ctx context.Context) error
	Update(ctx context.Context) error
	Delete(ctx context.Context) error
	Daily(ctx context.Context, date string) error
	Lucky(ctx context.Context, date string) error
	Status(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Falimatik CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user types
// "exit" or "quit". Commands that prompt read from the same reader.
//
//	Not signed in:
//	  - help             show available commands
//	  - signup           create an account
//	  - verify <token>   confirm the email address
//	  - resend           send a new verification email
//	  - signin           authenticate
//	  - status           check the server
//	  - exit | quit      leave the program
//
//	Signed in, additionally:
//	  - me               show the profile
//	  - update           change username, birth date, gender or password
//	  - delete           delete the account
//	  - daily [date]     show the power number of the day
//	  - lucky [date]     show the personal numbers of the day
//	  - logout           forget the session
//
// Errors returned by command handlers are ignored here; handlers print
// their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("falimatik %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: me, update, delete, daily [date], lucky [date], logout, signup, verify <token>, resend, status, exit")
			} else {
				printlnFn("Available commands: signup, verify <token>, resend, signin, status, exit")
			}

		case "signup":
			_ = a.Signup(ctx)

		case "signin", "login":
			_ = a.Signin(ctx)

		case "verify":
			_ = a.Verify(ctx, firstArg(args))

		case "resend":
			_ = a.Resend(ctx)

		case "me":
			_ = a.Me(ctx)

		case "update":
			_ = a.Update(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "daily":
			_ = a.Daily(ctx, firstArg(args))

		case "lucky":
			_ = a.Lucky(ctx, firstArg(args))

		case "status":
			_ = a.Status(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
