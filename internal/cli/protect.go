package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/quitvault/quitvault/internal/common"
)

// Protect prompts for a key and a value, encrypts the value, and stores the
// record under the key.
func (a *App) Protect(ctx context.Context) error {
	key, err := getSimpleText(a.reader, "Enter key", os.Stdout)
	if err != nil {
		return err
	}
	if key == "" {
		fmt.Println("Key must not be empty.")
		return nil
	}

	value, err := GetMultiline(a.reader, "Enter value", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.secrets.SaveProtected(ctx, key, value); err != nil {
		fmt.Printf("Failed to protect %s: %s\n", key, err.Error())
		return err
	}

	fmt.Println("Saved.")
	return nil
}

// Reveal prompts for a key and prints the decrypted value stored under it.
func (a *App) Reveal(ctx context.Context) error {
	key, err := getSimpleText(a.reader, "Enter key", os.Stdout)
	if err != nil {
		return err
	}

	var value string
	found, err := a.secrets.LoadProtected(ctx, key, &value)
	if err != nil {
		if errors.Is(err, common.ErrDecryptionFailed) {
			fmt.Printf("Record under %s cannot be decrypted.\n", key)
			return err
		}
		return err
	}
	if !found {
		fmt.Printf("Nothing stored under %s.\n", key)
		return nil
	}

	fmt.Println(value)
	return nil
}
