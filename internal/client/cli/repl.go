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
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Add(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, id string) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// runREPL starts a simple read–eval–print loop for the TaskMaster CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The same reader serves the prompts issued by
// the commands. The loop exits on EOF or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help           - show available commands
//	  - register       - create an account
//	  - login          - authenticate
//	  - exit | quit    - leave the program
//
//	Logged in:
//	  - me             - show the current account
//	  - add            - create a task
//	  - (l)ist [s] [n] - list tasks, skipping s and showing at most n
//	  - show <id>      - show a task
//	  - edit <id>      - edit a task
//	  - delete <id>    - delete a task
//	  - logout         - forget the session token
//	  - exit | quit    - leave the program
//
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("tm %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if needsLogin(cmd) && !a.isLoggedIn() {
			printlnFn("Please login first")
			continue
		}

		var cmdErr error

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: me, add, (l)ist [skip] [limit], show <id>, edit <id>, delete <id>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "me":
			cmdErr = a.Me(ctx)

		case "add":
			cmdErr = a.Add(ctx)

		case "l", "list":
			cmdErr = a.List(ctx, args)

		case "show", "edit", "delete":
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			switch cmd {
			case "show":
				cmdErr = a.Show(ctx, args[0])
			case "edit":
				cmdErr = a.Edit(ctx, args[0])
			default:
				cmdErr = a.Delete(ctx, args[0])
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr.Error())
		}
	}
}

func needsLogin(cmd string) bool {
	switch cmd {
	case "me", "add", "l", "list", "show", "edit", "delete", "logout":
		return true
	default:
		return false
	}
}
