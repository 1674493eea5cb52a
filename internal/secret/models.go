package secret

import "fmt"

// EncryptedRecord is the persisted form of a protected value.
//
// Ciphertext is base64; IV, Salt, and Tag are hex. Salt feeds the per-record
// key derivation, IV is the AES-GCM nonce, and Tag is the GCM authentication
// tag. A record decrypts only with the same salt and the current device key.
type EncryptedRecord struct {
	Ciphertext string `json:"ciphertext"`
	IV         string `json:"iv"`
	Salt       string `json:"salt"`
	Tag        string `json:"tag,omitempty"`
}

// SecuritySettings is the persisted settings singleton of the protection
// layer.
type SecuritySettings struct {
	BiometricEnabled       bool `json:"biometric_enabled"`
	PinEnabled             bool `json:"pin_enabled"`
	AutoLockTimeoutMinutes int  `json:"auto_lock_timeout_minutes"`
	EncryptSensitiveData   bool `json:"encrypt_sensitive_data"`
	RequireAuthForExport   bool `json:"require_auth_for_export"`
}

// DefaultSettings returns the out-of-the-box configuration: both auth
// factors disabled, 5-minute auto-lock, encryption on.
func DefaultSettings() SecuritySettings {
	return SecuritySettings{
		BiometricEnabled:       false,
		PinEnabled:             false,
		AutoLockTimeoutMinutes: 5,
		EncryptSensitiveData:   true,
		RequireAuthForExport:   true,
	}
}

// SettingsPatch is a partial update to SecuritySettings. Nil fields are
// left unchanged.
type SettingsPatch struct {
	BiometricEnabled       *bool
	PinEnabled             *bool
	AutoLockTimeoutMinutes *int
	EncryptSensitiveData   *bool
	RequireAuthForExport   *bool
}

func (s SecuritySettings) apply(p SettingsPatch) SecuritySettings {
	if p.BiometricEnabled != nil {
		s.BiometricEnabled = *p.BiometricEnabled
	}
	if p.PinEnabled != nil {
		s.PinEnabled = *p.PinEnabled
	}
	if p.AutoLockTimeoutMinutes != nil {
		s.AutoLockTimeoutMinutes = *p.AutoLockTimeoutMinutes
	}
	if p.EncryptSensitiveData != nil {
		s.EncryptSensitiveData = *p.EncryptSensitiveData
	}
	if p.RequireAuthForExport != nil {
		s.RequireAuthForExport = *p.RequireAuthForExport
	}
	return s
}

// Validate rejects settings no merge should ever produce.
func (s SecuritySettings) Validate() error {
	if s.AutoLockTimeoutMinutes < 1 {
		return fmt.Errorf("auto lock timeout must be at least 1 minute, got %d", s.AutoLockTimeoutMinutes)
	}
	return nil
}
