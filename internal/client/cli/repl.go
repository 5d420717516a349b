package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Category(ctx context.Context, args []string) error
	Upcoming(ctx context.Context, args []string) error
	Expired(ctx context.Context) error
	Summary(ctx context.Context) error
	Categories(ctx context.Context) error
	Prefs(ctx context.Context) error
	Toggle(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  add                         add a warranty
  edit <id>                   change a warranty
  delete <id>                 remove a warranty
  show <id>                   show all details
  list [all|active|expired]   list warranties
  search <text>               find by product, brand or notes
  category <name>             list one category
  upcoming [days]             warranties expiring soon
  expired                     expired warranties
  summary                     dashboard numbers
  categories                  suggested categories
  prefs                       notification preferences
  toggle <name>               flip a notification preference
  exit | quit                 leave the program
Ids may be shortened to any unique prefix.`

// runREPL reads commands line by line from reader and dispatches them to a.
//
// The prompt, which includes statusFn's output, is written to prompt before
// each line. The loop exits on EOF or when the user types "exit" or "quit".
// Command errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, prompt io.Writer) {
	for {
		fmt.Fprintf(prompt, "wk (%s)> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help", "h", "?":
			printlnFn(helpText)

		case "add":
			cmdErr = a.Add(ctx)

		case "edit":
			cmdErr = a.Edit(ctx, args)

		case "delete", "rm":
			cmdErr = a.Delete(ctx, args)

		case "show":
			cmdErr = a.Show(ctx, args)

		case "l", "list":
			cmdErr = a.List(ctx, args)

		case "search":
			cmdErr = a.Search(ctx, args)

		case "category":
			cmdErr = a.Category(ctx, args)

		case "upcoming":
			cmdErr = a.Upcoming(ctx, args)

		case "expired":
			cmdErr = a.Expired(ctx)

		case "summary":
			cmdErr = a.Summary(ctx)

		case "categories":
			cmdErr = a.Categories(ctx)

		case "prefs":
			cmdErr = a.Prefs(ctx)

		case "toggle":
			cmdErr = a.Toggle(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
