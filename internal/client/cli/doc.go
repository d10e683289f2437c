// Package cli provides the interactive Falimatik command-line client.
//
// It wires configuration, the HTTP API client and the gRPC client into a
// small REPL. Typical flow: signup, verify the emailed token, signin, then
// look at the profile with "me" and the numbers of the day with "lucky".
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
