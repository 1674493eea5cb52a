package common

// Names of credentials held in the secure keystore.
const (
	DeviceKeyName = "encryption_key"
	PinHashName   = "pin_hash"
)

// Keys of records owned by the protection layer in the key-value store.
const (
	SecuritySettingsKey = "@security_settings"
	LastAuthTimeKey     = "@last_auth_time"

	// EncryptedKeySuffix is appended to a record's key when it is stored in
	// encrypted form.
	EncryptedKeySuffix = "_encrypted"
)

// Keys of records owned by the durability layer in the key-value store.
const (
	OfflineQueueKey  = "@offline_queue"
	OfflineCacheKey  = "@offline_cache"
	OfflineStatusKey = "@offline_status"
	CacheConfigKey   = "@cache_config"
)

// SensitiveKeys is the fixed list of app records that the bulk
// encrypt/decrypt migration moves between plaintext and encrypted form.
var SensitiveKeys = []string{
	"@user_profile",
	"@health_metrics",
	"@smoking_history",
	"@progress_photos",
	"@consultation_notes",
}

// CriticalCacheKeys is the allow-list of records copied into the offline
// cache at high priority so they stay readable without connectivity.
var CriticalCacheKeys = []string{
	"@user_profile",
	"@smoking_history",
	"@daily_tips",
	"@achievements",
}
