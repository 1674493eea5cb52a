package offline

import (
	"encoding/json"
	"time"
)

// ActionType classifies a queued mutation.
type ActionType string

const (
	ActionCreate ActionType = "create"
	ActionUpdate ActionType = "update"
	ActionDelete ActionType = "delete"
)

// ActionStatus is the lifecycle state of a queued mutation.
type ActionStatus string

const (
	StatusPending ActionStatus = "pending"
	StatusSyncing ActionStatus = "syncing"
	StatusFailed  ActionStatus = "failed"
	StatusSynced  ActionStatus = "synced"
)

// MaxRetries is the per-action retry ceiling. An action that reaches it is
// parked as failed but stays in the queue.
const MaxRetries = 3

// Action is a mutation recorded while offline, awaiting remote apply.
type Action struct {
	ID         string          `json:"id"`
	Type       ActionType      `json:"type"`
	Key        string          `json:"key"`
	Data       json.RawMessage `json:"data,omitempty"`
	Timestamp  int64           `json:"timestamp"` // epoch ms, creation time
	RetryCount int             `json:"retry_count"`
	Status     ActionStatus    `json:"status"`
}

// Priority classifies a cache entry, controlling both its TTL and its
// eviction order.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// TTL returns how long entries of this priority stay fresh.
func (p Priority) TTL() time.Duration {
	switch p {
	case PriorityHigh:
		return 7 * 24 * time.Hour
	case PriorityLow:
		return 24 * time.Hour
	default:
		return 3 * 24 * time.Hour
	}
}

// rank orders priorities for eviction: lower evicts first.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

// CacheEntry is one cached read. There is exactly one entry per key.
type CacheEntry struct {
	Key       string          `json:"key"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`  // epoch ms, write time
	ExpiresAt int64           `json:"expires_at"` // epoch ms
	Priority  Priority        `json:"priority"`
}

// CacheConfig bounds the cache.
type CacheConfig struct {
	MaxSizeBytes int64 `json:"max_size_bytes"`
}

// DefaultCacheConfig returns the out-of-the-box cache budget.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{MaxSizeBytes: 10 * 1024 * 1024}
}

// Status is a recomputed snapshot of the durability layer. It is never
// maintained as a running counter.
type Status struct {
	IsOnline        bool  `json:"is_online"`
	LastOnlineAt    int64 `json:"last_online_at,omitempty"`    // epoch ms, 0 = never
	PendingActions  int   `json:"pending_actions"`
	CacheSizeBytes  int64 `json:"cache_size_bytes"`
	LastSyncAttempt int64 `json:"last_sync_attempt,omitempty"` // epoch ms, 0 = never
}

// persistedStatus is the subset of Status that survives restarts.
type persistedStatus struct {
	LastOnlineAt    int64 `json:"last_online_at,omitempty"`
	LastSyncAttempt int64 `json:"last_sync_attempt,omitempty"`
}

// DrainResult summarizes one queue drain pass.
type DrainResult struct {
	Success int
	Failed  int
}
