// Package cli provides the interactive Hygieia command-line client.
//
// It wires configuration, local storage, the REST API client, and an
// interactive REPL over the session and cart stores. Typical flow: restore
// the persisted session, start a background connectivity watcher, and
// execute user commands.
//
// Key features:
//   - Signup / Login / Logout with durable tokens
//   - Browse doctors, products and lab tests
//   - Book and cancel consultations
//   - Manage the pharmacy cart and check out
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
