package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Wipe is the factory reset: it deletes the device key, PIN credential,
// security settings, offline queue, and cache after an explicit
// confirmation. Records encrypted under the old key become unreadable.
func (a *App) Wipe(ctx context.Context) error {
	answer, err := getSimpleText(a.reader,
		"This permanently deletes keys, PIN, settings, queue, and cache. Encrypted records become unreadable. Type 'yes' to continue", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Println("Aborted.")
		return nil
	}

	errs := errors.Join(
		a.secrets.ClearSecurityData(ctx),
		a.vault.Reset(ctx),
	)
	if errs != nil {
		fmt.Printf("Wipe incomplete: %s\n", errs.Error())
		return errs
	}

	fmt.Println("Wiped.")
	return nil
}
