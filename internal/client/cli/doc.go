// Package cli provides the interactive newscheck command-line client.
//
// It wires configuration, the local session database, the analysis service
// client and the session controller into an interactive REPL. Typical flow:
// restore a stored session (or prompt for login), then execute user commands.
//
// Commands:
//   - login / register / logout
//   - analyze — submit an article for classification
//   - history — list past analyses
//   - show <n> — expand one history entry inline
//   - delete <n> — remove one history entry (with confirmation)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
