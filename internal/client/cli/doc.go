// Package cli provides the interactive TaskMaster command-line client.
//
// It wires configuration, the HTTP API client and an interactive REPL.
// Typical flow: register or login, then manage tasks.
//
// Commands:
//   - register / login / logout / me
//   - add, list [skip] [limit], show <id>, edit <id>, delete <id>
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for details.
package cli
