package cli

import (
	"context"
	"fmt"
	"time"
)

func fmtEpochMs(ms int64) string {
	if ms == 0 {
		return "never"
	}
	return time.UnixMilli(ms).Format(time.RFC3339)
}

// Status prints a combined protection and durability snapshot.
func (a *App) Status(ctx context.Context) error {
	settings := a.secrets.GetSecuritySettings(ctx)
	st := a.vault.Status(ctx)

	fmt.Println("Protection:")
	fmt.Printf("  pin set:            %v (factor enabled: %v)\n", a.secrets.HasPin(ctx), settings.PinEnabled)
	fmt.Printf("  biometric:          available %v (factor enabled: %v)\n",
		a.secrets.BiometricAvailability(ctx).Available, settings.BiometricEnabled)
	fmt.Printf("  auto-lock timeout:  %d min\n", settings.AutoLockTimeoutMinutes)
	fmt.Printf("  locked:             %v\n", !a.isUnlocked())

	fmt.Println("Durability:")
	fmt.Printf("  online:             %v\n", st.IsOnline)
	fmt.Printf("  pending actions:    %d\n", st.PendingActions)
	fmt.Printf("  cache size:         %d bytes\n", st.CacheSizeBytes)
	fmt.Printf("  last online:        %s\n", fmtEpochMs(st.LastOnlineAt))
	fmt.Printf("  last sync attempt:  %s\n", fmtEpochMs(st.LastSyncAttempt))
	return nil
}
