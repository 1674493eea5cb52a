package cli

import (
	"context"
	"fmt"
)

// EncryptAll migrates every plaintext record on the sensitive-key list into
// encrypted form.
func (a *App) EncryptAll(ctx context.Context) error {
	count, err := a.secrets.EncryptSensitiveData(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Encrypted %d record(s).\n", count)
	return nil
}

// DecryptAll restores every encrypted record on the sensitive-key list to
// plaintext form.
func (a *App) DecryptAll(ctx context.Context) error {
	count, err := a.secrets.DecryptSensitiveData(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Decrypted %d record(s).\n", count)
	return nil
}
