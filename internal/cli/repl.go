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
	isUnlocked() bool
	Status(ctx context.Context) error
	Unlock(ctx context.Context) error
	SetPin(ctx context.Context) error
	VerifyPin(ctx context.Context) error
	RemovePin(ctx context.Context) error
	Settings(ctx context.Context) error
	Protect(ctx context.Context) error
	Reveal(ctx context.Context) error
	EncryptAll(ctx context.Context) error
	DecryptAll(ctx context.Context) error
	Queue(ctx context.Context) error
	Sync(ctx context.Context) error
	Cache(ctx context.Context) error
	ClearExpired(ctx context.Context) error
	Wipe(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the QuitVault CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help           — show available commands
//	  - status         — protection and durability snapshot
//	  - unlock         — authenticate (biometric or PIN)
//	  - queue          — list queued offline actions
//	  - sync           — probe connectivity and drain the queue
//	  - cache          — cache statistics
//	  - clear-expired  — drop expired cache entries
//	  - exit | quit    — leave the program
//
//	Unlocked only:
//	  - setpin | verifypin | removepin
//	  - settings       — show and patch security settings
//	  - protect        — encrypt and store a value
//	  - reveal         — decrypt and show a stored value
//	  - encrypt-all    — migrate the sensitive-key set to encrypted form
//	  - decrypt-all    — inverse migration
//	  - wipe           — factory reset
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("qv> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		locked := func() bool {
			if a.isUnlocked() {
				return false
			}
			printlnFn("Locked. Type 'unlock' first.")
			return true
		}

		switch cmd {
		case "help":
			printlnFn("Always: status, unlock, queue, sync, cache, clear-expired, exit")
			printlnFn("Unlocked: setpin, verifypin, removepin, settings, protect, reveal, encrypt-all, decrypt-all, wipe")

		case "s", "status":
			_ = a.Status(ctx)

		case "unlock":
			_ = a.Unlock(ctx)

		case "setpin":
			if locked() {
				continue
			}
			_ = a.SetPin(ctx)

		case "verifypin":
			if locked() {
				continue
			}
			_ = a.VerifyPin(ctx)

		case "removepin":
			if locked() {
				continue
			}
			_ = a.RemovePin(ctx)

		case "settings":
			if locked() {
				continue
			}
			_ = a.Settings(ctx)

		case "protect":
			if locked() {
				continue
			}
			_ = a.Protect(ctx)

		case "reveal":
			if locked() {
				continue
			}
			_ = a.Reveal(ctx)

		case "encrypt-all":
			if locked() {
				continue
			}
			_ = a.EncryptAll(ctx)

		case "decrypt-all":
			if locked() {
				continue
			}
			_ = a.DecryptAll(ctx)

		case "queue":
			_ = a.Queue(ctx)

		case "sync":
			_ = a.Sync(ctx)

		case "cache":
			_ = a.Cache(ctx)

		case "clear-expired":
			_ = a.ClearExpired(ctx)

		case "wipe":
			if locked() {
				continue
			}
			_ = a.Wipe(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
