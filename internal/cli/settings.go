package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/quitvault/quitvault/internal/secret"
)

func parseOnOff(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on/off, got %q", value)
}

// Settings prints the current security settings and applies an optional
// patch entered as name=value lines. Supported names: biometric, pin,
// autolock (minutes), encrypt, export_auth.
func (a *App) Settings(ctx context.Context) error {
	s := a.secrets.GetSecuritySettings(ctx)

	fmt.Printf("biometric:   %v\n", s.BiometricEnabled)
	fmt.Printf("pin:         %v\n", s.PinEnabled)
	fmt.Printf("autolock:    %d min\n", s.AutoLockTimeoutMinutes)
	fmt.Printf("encrypt:     %v\n", s.EncryptSensitiveData)
	fmt.Printf("export_auth: %v\n", s.RequireAuthForExport)

	lines, err := GetKeyValues(a.reader, "Change settings", os.Stdout)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}

	var patch secret.SettingsPatch
	for _, line := range lines {
		name, value, found := strings.Cut(line, "=")
		if !found {
			fmt.Printf("Skipping %q: expected name=value.\n", line)
			continue
		}

		switch strings.TrimSpace(name) {
		case "biometric":
			b, err := parseOnOff(value)
			if err != nil {
				fmt.Println(err.Error())
				return nil
			}
			patch.BiometricEnabled = &b
		case "pin":
			b, err := parseOnOff(value)
			if err != nil {
				fmt.Println(err.Error())
				return nil
			}
			patch.PinEnabled = &b
		case "autolock":
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				fmt.Printf("autolock expects minutes, got %q.\n", value)
				return nil
			}
			patch.AutoLockTimeoutMinutes = &n
		case "encrypt":
			b, err := parseOnOff(value)
			if err != nil {
				fmt.Println(err.Error())
				return nil
			}
			patch.EncryptSensitiveData = &b
		case "export_auth":
			b, err := parseOnOff(value)
			if err != nil {
				fmt.Println(err.Error())
				return nil
			}
			patch.RequireAuthForExport = &b
		default:
			fmt.Printf("Unknown setting %q.\n", strings.TrimSpace(name))
			return nil
		}
	}

	if _, err := a.secrets.UpdateSecuritySettings(ctx, patch); err != nil {
		fmt.Printf("Settings rejected: %s\n", err.Error())
		return err
	}

	fmt.Println("Settings updated.")
	return nil
}
