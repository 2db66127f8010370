// Package cli provides the interactive logingate command-line client.
//
// It wires configuration, local remembered-state storage, the API client,
// and an interactive REPL built around a login form. Typical flow: resume a
// remembered session if one exists, otherwise prompt for credentials
// (prefilling the remembered email), submit, and navigate to the redirect
// target on success.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
