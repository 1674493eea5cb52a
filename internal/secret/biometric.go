package secret

import (
	"context"

	"github.com/quitvault/quitvault/internal/common"
)

// Availability describes what the device's biometric hardware offers.
// Available requires both hardware support and at least one enrolled
// credential.
type Availability struct {
	Available      bool
	SupportedTypes []string
}

// Challenger is the platform biometric primitive the protection layer
// consumes. Real devices provide a keychain/biometric-backed one; tests
// use StaticChallenger.
type Challenger interface {
	// Availability reports hardware support and enrollment.
	Availability(ctx context.Context) (Availability, error)

	// Challenge shows the platform prompt and blocks until the user passes
	// or fails it. A nil return means success.
	Challenge(ctx context.Context, prompt string) error
}

// StaticChallenger is a canned Challenger for tests and for hosts without
// biometric hardware.
type StaticChallenger struct {
	Avail        Availability
	ChallengeErr error
}

func (c *StaticChallenger) Availability(context.Context) (Availability, error) {
	return c.Avail, nil
}

func (c *StaticChallenger) Challenge(context.Context, string) error {
	if !c.Avail.Available {
		return common.ErrBiometricUnavailable
	}
	return c.ChallengeErr
}
