package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/quitvault/quitvault/internal/common"
	"github.com/quitvault/quitvault/internal/cryptox"
	"github.com/quitvault/quitvault/internal/secret"
)

// getSimpleText and getPin are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPin = GetPin

// Unlock runs the device unlock flow.
//
// If biometric is enabled and available it is tried first, falling back to
// the PIN prompt on failure. A wrong PIN is reported, not returned as an
// error. With neither factor enabled there is nothing to unlock.
func (a *App) Unlock(ctx context.Context) error {
	if a.isUnlocked() {
		fmt.Println("Already unlocked.")
		return nil
	}

	settings := a.secrets.GetSecuritySettings(ctx)
	if settings.BiometricEnabled && a.secrets.BiometricAvailability(ctx).Available {
		if err := a.secrets.AuthenticateWithBiometric(ctx, "Unlock QuitVault"); err == nil {
			fmt.Println("Unlocked.")
			return nil
		}
		log.Printf("Biometric authentication failed, falling back to PIN")
	}

	if !a.secrets.HasPin(ctx) {
		fmt.Println("No PIN is set; enable a factor with 'setpin' after unlocking.")
		return nil
	}

	pin, err := getPin("Enter PIN", os.Stdout)
	if err != nil {
		return err
	}
	defer cryptox.WipeByteArray(pin)

	ok, err := a.secrets.VerifyPin(ctx, string(pin))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Wrong PIN.")
		return nil
	}

	fmt.Println("Unlocked.")
	return nil
}

// SetPin prompts for a new PIN twice and stores it. Setting a PIN also
// enables the PIN factor.
func (a *App) SetPin(ctx context.Context) error {
	pin, err := getPin("Enter new PIN", os.Stdout)
	if err != nil {
		return err
	}
	defer cryptox.WipeByteArray(pin)

	confirm, err := getPin("Repeat new PIN", os.Stdout)
	if err != nil {
		return err
	}
	defer cryptox.WipeByteArray(confirm)

	if !bytes.Equal(pin, confirm) {
		fmt.Println("PINs do not match.")
		return nil
	}

	if err := a.secrets.SetPin(ctx, string(pin)); err != nil {
		if errors.Is(err, common.ErrPinTooShort) {
			fmt.Printf("PIN must be at least %d characters.\n", secret.MinPinLength)
			return nil
		}
		return err
	}

	enabled := true
	if _, err := a.secrets.UpdateSecuritySettings(ctx, secret.SettingsPatch{PinEnabled: &enabled}); err != nil {
		return err
	}

	fmt.Println("PIN set.")
	return nil
}

// VerifyPin prompts for the PIN and reports whether it matches.
func (a *App) VerifyPin(ctx context.Context) error {
	pin, err := getPin("Enter PIN", os.Stdout)
	if err != nil {
		return err
	}
	defer cryptox.WipeByteArray(pin)

	ok, err := a.secrets.VerifyPin(ctx, string(pin))
	if err != nil {
		return err
	}
	if ok {
		fmt.Println("PIN matches.")
	} else {
		fmt.Println("PIN does not match.")
	}
	return nil
}

// RemovePin deletes the PIN credential and disables the PIN factor.
func (a *App) RemovePin(ctx context.Context) error {
	if err := a.secrets.RemovePin(ctx); err != nil {
		return err
	}

	disabled := false
	if _, err := a.secrets.UpdateSecuritySettings(ctx, secret.SettingsPatch{PinEnabled: &disabled}); err != nil {
		return err
	}

	fmt.Println("PIN removed.")
	return nil
}
