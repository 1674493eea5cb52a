package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) getStatus() string {
	s := "locked"
	if a.isUnlocked() {
		s = "unlocked"
	}
	if a.Mode != "" {
		s = s + " " + string(a.Mode)
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to QuitVault CLI (type 'help' for commands)")

	if !a.isUnlocked() {
		_ = a.Unlock(ctx)
	}

	unsubscribe := a.vault.AddNetworkListener(func(online bool) {
		if online {
			a.setMode(ModeOnline)
		} else {
			a.setMode(ModeOffline)
		}
	})
	defer unsubscribe()

	go a.vault.StartWatcher(ctx, a.config.OnlineCheckInterval)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
