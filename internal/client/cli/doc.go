// Package cli provides the interactive Elementopia command-line client.
//
// It wires configuration, the local credential store, the API gateway,
// the data services and the session controller, then runs a REPL.
// On start the stored session (if any) is restored and checked with the
// server.
//
// Commands:
//   - register / login / logout
//   - whoami: show the signed-in user
//   - leaderboard [score|name] [query]: career scores, sorted and filtered
//   - profile / edit: show or edit the profile (whole-record save)
//   - status: session and local credential store state
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
