package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Open(ctx context.Context, collection string) error
	Upload(ctx context.Context) error
	Reconnect(ctx context.Context) error
}

// runREPL reads a line from reader, parses the first token as the command,
// and dispatches to methods on 'a'. Unknown commands are reported back to
// the user. The loop exits on EOF, on ctx cancellation, or when the user
// types "exit" or "quit".
//
// The reader is the same one the screens prompt from. Input buffered ahead
// of the loop (pipes, pasted blocks) must stay visible to an in-screen
// prompt, so the REPL never reads through a second buffer of its own.
//
// Errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "admin %s> ", statusFn())
		line, rerr := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if rerr != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: open <collection>, whoami, upload, logout, exit")
				fmt.Fprintln(w, "Collections:", strings.Join(collectionNames(), ", "))
			} else {
				fmt.Fprintln(w, "Available commands: login, reconnect, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "o", "open":
			if len(args) == 0 {
				fmt.Fprintln(w, "Usage: open <collection>")
				continue
			}
			_ = a.Open(ctx, args[0])

		case "upload":
			_ = a.Upload(ctx)

		case "reconnect":
			_ = a.Reconnect(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if rerr != nil {
			return
		}
	}
}
