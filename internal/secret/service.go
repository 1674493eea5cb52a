package secret

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/quitvault/quitvault/internal/common"
	"github.com/quitvault/quitvault/internal/cryptox"
	"github.com/quitvault/quitvault/internal/keystore"
	"github.com/quitvault/quitvault/internal/logging"
	"github.com/quitvault/quitvault/internal/storage"
)

// MinPinLength is the shortest PIN SetPin accepts.
const MinPinLength = 4

// Service is the protection layer. It serializes its own mutating
// operations; callers may share one instance.
type Service struct {
	kv    storage.Store
	creds keystore.Keystore
	bio   Challenger
	log   logging.Logger

	now func() time.Time

	mu sync.Mutex
}

// NewService constructs the protection service over the given key-value
// store, secure keystore, and biometric challenger.
func NewService(kv storage.Store, creds keystore.Keystore, bio Challenger, log logging.Logger) *Service {
	return &Service{
		kv:    kv,
		creds: creds,
		bio:   bio,
		log:   log.With("component", "secret"),
		now:   time.Now,
	}
}

// Hash returns the hex SHA-256 digest of input. Deterministic and unsalted;
// used for the PIN credential.
func (s *Service) Hash(input string) string {
	return cryptox.Hash(input)
}

// deviceKey returns the device key, creating and persisting it on first
// use when create is true.
func (s *Service) deviceKey(ctx context.Context, create bool) ([]byte, error) {
	raw, err := s.creds.Get(ctx, common.DeviceKeyName)
	if err == nil {
		key, err := hex.DecodeString(string(raw))
		if err != nil || len(key) != cryptox.KeySize {
			return nil, fmt.Errorf("malformed device key: %w", common.ErrCredentialNotSet)
		}
		return key, nil
	}
	if !errors.Is(err, keystore.ErrNotFound) {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	if !create {
		return nil, common.ErrCredentialNotSet
	}

	key := cryptox.GenerateRandByteArray(cryptox.KeySize)
	if err := s.creds.Set(ctx, common.DeviceKeyName, []byte(hex.EncodeToString(key))); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	s.log.Info(ctx, "device key created")
	return key, nil
}

// Encrypt seals plaintext into an EncryptedRecord. The device key is created
// lazily on the first call; every call uses a fresh salt and nonce.
func (s *Service) Encrypt(ctx context.Context, plaintext string) (*EncryptedRecord, error) {
	deviceKey, err := s.deviceKey(ctx, true)
	if err != nil {
		return nil, err
	}
	defer cryptox.WipeByteArray(deviceKey)

	salt := cryptox.GenerateRandByteArray(cryptox.SaltSize)

	recordKey, err := cryptox.DeriveRecordKey(deviceKey, salt)
	if err != nil {
		return nil, err
	}
	defer cryptox.WipeByteArray(recordKey)

	ciphertext, tag, nonce, err := cryptox.Encrypt(recordKey, []byte(plaintext))
	if err != nil {
		return nil, err
	}

	return &EncryptedRecord{
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		IV:         hex.EncodeToString(nonce),
		Salt:       hex.EncodeToString(salt),
		Tag:        hex.EncodeToString(tag),
	}, nil
}

// Decrypt re-derives the record key from the current device key and the
// record's salt and opens the ciphertext. It returns
// common.ErrDecryptionFailed if the record is malformed or was sealed under
// a device key that no longer exists.
func (s *Service) Decrypt(ctx context.Context, record *EncryptedRecord) (string, error) {
	deviceKey, err := s.deviceKey(ctx, false)
	if err != nil {
		s.log.Error(ctx, "decrypt without device key", "error", err)
		return "", fmt.Errorf("%w: %w", common.ErrDecryptionFailed, err)
	}
	defer cryptox.WipeByteArray(deviceKey)

	salt, err := hex.DecodeString(record.Salt)
	if err != nil {
		return "", fmt.Errorf("%w: malformed salt", common.ErrDecryptionFailed)
	}
	nonce, err := hex.DecodeString(record.IV)
	if err != nil {
		return "", fmt.Errorf("%w: malformed iv", common.ErrDecryptionFailed)
	}
	tag, err := hex.DecodeString(record.Tag)
	if err != nil {
		return "", fmt.Errorf("%w: malformed tag", common.ErrDecryptionFailed)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(record.Ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: malformed ciphertext", common.ErrDecryptionFailed)
	}

	recordKey, err := cryptox.DeriveRecordKey(deviceKey, salt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrDecryptionFailed, err)
	}
	defer cryptox.WipeByteArray(recordKey)

	plaintext, err := cryptox.Decrypt(recordKey, ciphertext, tag, nonce)
	if err != nil {
		s.log.Error(ctx, "record decryption failed", "error", err)
		return "", fmt.Errorf("%w: %w", common.ErrDecryptionFailed, err)
	}

	return string(plaintext), nil
}

// SaveProtected serializes value, encrypts it, and persists the record
// under key + "_encrypted".
func (s *Service) SaveProtected(ctx context.Context, key string, value any) error {
	plaintext, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", key, err)
	}

	record, err := s.Encrypt(ctx, string(plaintext))
	if err != nil {
		return fmt.Errorf("encrypt %s: %w", key, err)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("serialize record %s: %w", key, err)
	}

	if err := s.kv.Set(ctx, key+common.EncryptedKeySuffix, data); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	return nil
}

// LoadProtected loads and decrypts the record stored under key +
// "_encrypted" into v. It returns (false, nil) when nothing is stored and
// propagates decryption failures.
func (s *Service) LoadProtected(ctx context.Context, key string, v any) (bool, error) {
	data, err := s.kv.Get(ctx, key+common.EncryptedKeySuffix)
	if err != nil {
		return false, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	if data == nil {
		return false, nil
	}

	var record EncryptedRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return false, fmt.Errorf("%w: malformed record", common.ErrDecryptionFailed)
	}

	plaintext, err := s.Decrypt(ctx, &record)
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(plaintext), v); err != nil {
		return false, fmt.Errorf("deserialize %s: %w", key, err)
	}
	return true, nil
}

// BiometricAvailability reports whether a biometric challenge can succeed
// on this device. Errors degrade to "not available".
func (s *Service) BiometricAvailability(ctx context.Context) Availability {
	avail, err := s.bio.Availability(ctx)
	if err != nil {
		s.log.Warn(ctx, "biometric availability check failed", "error", err)
		return Availability{}
	}
	return avail
}

// AuthenticateWithBiometric runs the platform biometric challenge and, on
// success, refreshes the last-auth timestamp.
func (s *Service) AuthenticateWithBiometric(ctx context.Context, prompt string) error {
	avail := s.BiometricAvailability(ctx)
	if !avail.Available {
		return common.ErrBiometricUnavailable
	}

	if err := s.bio.Challenge(ctx, prompt); err != nil {
		if errors.Is(err, common.ErrBiometricUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %w", common.ErrBiometricFailed, err)
	}

	s.touchAuth(ctx)
	return nil
}

// SetPin stores the digest of pin as the PIN credential. The PIN must be at
// least MinPinLength characters. Setting a PIN counts as a successful
// authentication, so enabling the PIN factor right after does not lock the
// session.
func (s *Service) SetPin(ctx context.Context, pin string) error {
	if utf8.RuneCountInString(pin) < MinPinLength {
		return common.ErrPinTooShort
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.creds.Set(ctx, common.PinHashName, []byte(s.Hash(pin))); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}

	s.touchAuth(ctx)
	return nil
}

// VerifyPin reports whether pin matches the stored credential. A match
// refreshes the last-auth timestamp. With no PIN set, every input fails.
func (s *Service) VerifyPin(ctx context.Context, pin string) (bool, error) {
	stored, err := s.creds.Get(ctx, common.PinHashName)
	if errors.Is(err, keystore.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}

	candidate := []byte(s.Hash(pin))
	if subtle.ConstantTimeCompare(stored, candidate) != 1 {
		return false, nil
	}

	s.touchAuth(ctx)
	return true, nil
}

// HasPin reports whether a PIN credential exists. Errors degrade to false.
func (s *Service) HasPin(ctx context.Context) bool {
	_, err := s.creds.Get(ctx, common.PinHashName)
	if err != nil {
		if !errors.Is(err, keystore.ErrNotFound) {
			s.log.Warn(ctx, "pin lookup failed", "error", err)
		}
		return false
	}
	return true
}

// RemovePin deletes the PIN credential.
func (s *Service) RemovePin(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.creds.Delete(ctx, common.PinHashName); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	return nil
}

// touchAuth records now as the moment of the last successful
// authentication. Failures are logged, not surfaced: a successful auth must
// not be reported as failed because the timestamp write failed.
func (s *Service) touchAuth(ctx context.Context) {
	ms := strconv.FormatInt(s.now().UnixMilli(), 10)
	if err := s.kv.Set(ctx, common.LastAuthTimeKey, []byte(ms)); err != nil {
		s.log.Warn(ctx, "failed to record auth time", "error", err)
	}
}

// IsAuthenticationRequired implements the auto-lock policy: false when
// neither factor is enabled; true when no successful auth has happened yet;
// otherwise true iff the idle time reached the configured timeout.
func (s *Service) IsAuthenticationRequired(ctx context.Context) bool {
	settings := s.GetSecuritySettings(ctx)
	if !settings.BiometricEnabled && !settings.PinEnabled {
		return false
	}

	raw, err := s.kv.Get(ctx, common.LastAuthTimeKey)
	if err != nil {
		s.log.Warn(ctx, "last auth time unavailable", "error", err)
		return false
	}
	if raw == nil {
		return true
	}

	ms, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return true
	}

	elapsed := s.now().Sub(time.UnixMilli(ms))
	return elapsed >= time.Duration(settings.AutoLockTimeoutMinutes)*time.Minute
}

// GetSecuritySettings returns the persisted settings, or defaults when
// nothing is stored or the read fails.
func (s *Service) GetSecuritySettings(ctx context.Context) SecuritySettings {
	raw, err := s.kv.Get(ctx, common.SecuritySettingsKey)
	if err != nil {
		s.log.Warn(ctx, "settings read failed, using defaults", "error", err)
		return DefaultSettings()
	}
	if raw == nil {
		return DefaultSettings()
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(raw, &settings); err != nil {
		s.log.Warn(ctx, "settings malformed, using defaults", "error", err)
		return DefaultSettings()
	}
	return settings
}

// UpdateSecuritySettings applies patch to the stored settings, validates
// the result, and persists it.
func (s *Service) UpdateSecuritySettings(ctx context.Context, patch SettingsPatch) (SecuritySettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := s.GetSecuritySettings(ctx).apply(patch)
	if err := settings.Validate(); err != nil {
		return SecuritySettings{}, err
	}

	data, err := json.Marshal(settings)
	if err != nil {
		return SecuritySettings{}, err
	}
	if err := s.kv.Set(ctx, common.SecuritySettingsKey, data); err != nil {
		return SecuritySettings{}, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	return settings, nil
}

// EncryptSensitiveData moves every plaintext record on the sensitive-key
// list into encrypted form. Items are independent: one failure is logged
// and the rest proceed. Returns the number of records migrated.
func (s *Service) EncryptSensitiveData(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, key := range common.SensitiveKeys {
		raw, err := s.kv.Get(ctx, key)
		if err != nil {
			s.log.Warn(ctx, "skip sensitive key", "key", key, "error", err)
			continue
		}
		if raw == nil {
			continue
		}

		if err := s.SaveProtected(ctx, key, json.RawMessage(raw)); err != nil {
			s.log.Warn(ctx, "failed to encrypt", "key", key, "error", err)
			continue
		}
		if err := s.kv.Delete(ctx, key); err != nil {
			s.log.Warn(ctx, "failed to remove plaintext", "key", key, "error", err)
			continue
		}
		count++
	}
	return count, nil
}

// DecryptSensitiveData is the inverse migration: encrypted records on the
// sensitive-key list are restored to plaintext form. Best-effort, counts
// successes.
func (s *Service) DecryptSensitiveData(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, key := range common.SensitiveKeys {
		var value json.RawMessage
		found, err := s.LoadProtected(ctx, key, &value)
		if err != nil {
			s.log.Warn(ctx, "failed to decrypt", "key", key, "error", err)
			continue
		}
		if !found {
			continue
		}

		if err := s.kv.Set(ctx, key, value); err != nil {
			s.log.Warn(ctx, "failed to restore plaintext", "key", key, "error", err)
			continue
		}
		if err := s.kv.Delete(ctx, key+common.EncryptedKeySuffix); err != nil {
			s.log.Warn(ctx, "failed to remove encrypted record", "key", key, "error", err)
			continue
		}
		count++
	}
	return count, nil
}

// ClearSecurityData factory-resets the protection layer: device key, PIN
// credential, settings, and last-auth timestamp are all deleted. Records
// encrypted under the old key become permanently unreadable.
func (s *Service) ClearSecurityData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	errs := errors.Join(
		s.creds.Delete(ctx, common.DeviceKeyName),
		s.creds.Delete(ctx, common.PinHashName),
		s.kv.Delete(ctx, common.SecuritySettingsKey),
		s.kv.Delete(ctx, common.LastAuthTimeKey),
	)
	if errs != nil {
		return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, errs)
	}

	s.log.Info(ctx, "security data wiped")
	return nil
}
