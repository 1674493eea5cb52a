// Package cli provides the interactive QuitVault command-line client.
//
// It wires configuration, the SQLite-backed key-value store, the protection
// and durability services, and an interactive REPL. Typical flow: unlock the
// device if auto-lock requires it, start a background connectivity watcher,
// and execute user commands.
//
// Key features:
//   - PIN management and biometric/PIN unlock
//   - Protect / reveal encrypted records
//   - Bulk encryption and decryption of the sensitive-key set
//   - Offline queue inspection, manual sync, cache statistics
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, App.Root, and runREPL for details.
package cli
