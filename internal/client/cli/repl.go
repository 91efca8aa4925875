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
	List(ctx context.Context) error
	Submit(ctx context.Context) error
	Delete(ctx context.Context) error
	Candle(ctx context.Context) error
	CandleAll(ctx context.Context) error
	Refresh(ctx context.Context) error
	Stats(ctx context.Context) error
	Clear(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the tribute wall CLI.
//
// It reads a line from the provided reader, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on EOF or when the user types
// "exit" or "quit". The reader is shared with the interactive prompts so
// only one buffer ever sits between the user and the commands.
//
// Commands:
//
//	help          — show available commands
//	list | l      — print the tribute wall
//	submit        — share a tribute (interactive prompts)
//	delete        — delete one of your own tributes
//	candle        — light a candle on a tribute
//	candleall     — light every candle on the wall
//	refresh       — re-fetch the wall from the remote store
//	stats         — wall statistics
//	clear         — erase the local cached copy
//	exit | quit   — leave the program
//
// Any errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("wall> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			printlnFn("Available commands: (l)ist, submit, delete, candle, candleall, refresh, stats, clear, exit")

		case "l", "list":
			_ = a.List(ctx)

		case "submit":
			_ = a.Submit(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "candle":
			_ = a.Candle(ctx)

		case "candleall":
			_ = a.CandleAll(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "stats":
			_ = a.Stats(ctx)

		case "clear":
			_ = a.Clear(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
