package offline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quitvault/quitvault/internal/common"
	"github.com/quitvault/quitvault/internal/logging"
	"github.com/quitvault/quitvault/internal/netx"
	"github.com/quitvault/quitvault/internal/storage"
)

// Manager is the durability layer. It serializes its own mutating
// operations; callers may share one instance.
type Manager struct {
	kv      storage.Store
	applier Applier
	prober  netx.Prober
	log     logging.Logger

	now func() time.Time

	mu sync.Mutex

	lmu       sync.Mutex
	listeners map[int]func(online bool)
	nextID    int
	online    bool
	probed    bool
}

// NewManager constructs the durability manager over the given key-value
// store, remote applier, and reachability prober.
func NewManager(kv storage.Store, applier Applier, prober netx.Prober, log logging.Logger) *Manager {
	return &Manager{
		kv:        kv,
		applier:   applier,
		prober:    prober,
		log:       log.With("component", "offline"),
		now:       time.Now,
		listeners: make(map[int]func(online bool)),
	}
}

// CheckNetworkStatus is a point-in-time reachability probe.
func (m *Manager) CheckNetworkStatus(ctx context.Context) bool {
	return m.prober.Online(ctx)
}

// queue persistence: whole-collection read-modify-write, degrading to an
// empty slice on corruption so bookkeeping never blocks new writes.

func (m *Manager) loadQueue(ctx context.Context) []Action {
	raw, err := m.kv.Get(ctx, common.OfflineQueueKey)
	if err != nil {
		m.log.Warn(ctx, "queue read failed", "error", err)
		return nil
	}
	if raw == nil {
		return nil
	}
	var queue []Action
	if err := json.Unmarshal(raw, &queue); err != nil {
		m.log.Warn(ctx, "queue malformed, starting empty", "error", err)
		return nil
	}
	return queue
}

func (m *Manager) saveQueue(ctx context.Context, queue []Action) error {
	data, err := json.Marshal(queue)
	if err != nil {
		return err
	}
	if err := m.kv.Set(ctx, common.OfflineQueueKey, data); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	return nil
}

// Enqueue appends a new pending action to the persisted queue. Multiple
// mutations to the same key are kept and later replayed in order, never
// deduplicated.
func (m *Manager) Enqueue(ctx context.Context, typ ActionType, key string, data json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	action := Action{
		ID:        strconv.FormatInt(now.UnixMilli(), 10) + "_" + uuid.NewString()[:8],
		Type:      typ,
		Key:       key,
		Data:      data,
		Timestamp: now.UnixMilli(),
		Status:    StatusPending,
	}

	queue := append(m.loadQueue(ctx), action)
	if err := m.saveQueue(ctx, queue); err != nil {
		return err
	}

	m.log.Debug(ctx, "action queued", "id", action.ID, "type", typ, "key", key)
	return nil
}

// PendingActions returns a copy of the persisted queue in insertion order.
func (m *Manager) PendingActions(ctx context.Context) []Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadQueue(ctx)
}

// DrainQueue replays every pending or failed action in insertion order.
// It is a no-op while offline. A successful action is removed from the
// queue; a failing one has its retry count bumped and is parked as failed
// at the ceiling. One action's failure never blocks the rest.
func (m *Manager) DrainQueue(ctx context.Context) (DrainResult, error) {
	if !m.CheckNetworkStatus(ctx) {
		return DrainResult{}, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	queue := m.loadQueue(ctx)

	var result DrainResult
	remaining := make([]Action, 0, len(queue))
	processed := 0

	for _, action := range queue {
		if action.Status != StatusPending && action.Status != StatusFailed {
			remaining = append(remaining, action)
			continue
		}
		processed++

		action.Status = StatusSyncing
		if err := m.applier.Apply(ctx, action); err != nil {
			action.RetryCount++
			if action.RetryCount >= MaxRetries {
				action.Status = StatusFailed
			} else {
				action.Status = StatusPending
			}
			remaining = append(remaining, action)
			result.Failed++
			m.log.Warn(ctx, "action apply failed",
				"id", action.ID, "retries", action.RetryCount, "status", action.Status, "error", err)
			continue
		}

		// synced actions leave the queue in the same pass
		result.Success++
		m.log.Debug(ctx, "action synced", "id", action.ID)
	}

	if err := m.saveQueue(ctx, remaining); err != nil {
		return result, err
	}

	st := m.loadPersistedStatus(ctx)
	st.LastSyncAttempt = m.now().UnixMilli()
	if processed > 0 {
		st.LastOnlineAt = m.now().UnixMilli()
	}
	m.savePersistedStatus(ctx, st)

	m.log.Info(ctx, "queue drained", "success", result.Success, "failed", result.Failed)
	return result, nil
}

// cache persistence, same whole-collection pattern as the queue.

func (m *Manager) loadCache(ctx context.Context) []CacheEntry {
	raw, err := m.kv.Get(ctx, common.OfflineCacheKey)
	if err != nil {
		m.log.Warn(ctx, "cache read failed", "error", err)
		return nil
	}
	if raw == nil {
		return nil
	}
	var entries []CacheEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		m.log.Warn(ctx, "cache malformed, starting empty", "error", err)
		return nil
	}
	return entries
}

func (m *Manager) saveCache(ctx context.Context, entries []CacheEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	if err := m.kv.Set(ctx, common.OfflineCacheKey, data); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	return nil
}

func cacheSize(entries []CacheEntry) int64 {
	if len(entries) == 0 {
		return 0
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return 0
	}
	return int64(len(data))
}

// CacheSet upserts a cache entry with the TTL of its priority, then
// enforces the byte budget by evicting lowest-priority, oldest entries
// until the serialized cache fits.
func (m *Manager) CacheSet(ctx context.Context, key string, data json.RawMessage, priority Priority) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	entry := CacheEntry{
		Key:       key,
		Data:      data,
		Timestamp: now.UnixMilli(),
		ExpiresAt: now.Add(priority.TTL()).UnixMilli(),
		Priority:  priority,
	}

	entries := m.loadCache(ctx)
	replaced := false
	for i := range entries {
		if entries[i].Key == key {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}

	entries = m.enforceBudget(ctx, entries)

	return m.saveCache(ctx, entries)
}

// enforceBudget evicts entries until the serialized cache fits the
// configured budget. Eviction order is priority ascending, then age.
func (m *Manager) enforceBudget(ctx context.Context, entries []CacheEntry) []CacheEntry {
	budget := m.cacheConfig(ctx).MaxSizeBytes
	if cacheSize(entries) <= budget {
		return entries
	}

	sortEntriesForEviction(entries)
	for len(entries) > 0 && cacheSize(entries) > budget {
		m.log.Debug(ctx, "cache entry evicted",
			"key", entries[0].Key, "priority", entries[0].Priority)
		entries = entries[1:]
	}
	return entries
}

// CacheGet returns the cached data for key, or (nil, false) if the key is
// absent or expired. An expired entry is removed as a side effect.
func (m *Manager) CacheGet(ctx context.Context, key string) (json.RawMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.loadCache(ctx)
	for i, e := range entries {
		if e.Key != key {
			continue
		}
		if m.now().UnixMilli() > e.ExpiresAt {
			// lazy expiry
			entries = append(entries[:i], entries[i+1:]...)
			if err := m.saveCache(ctx, entries); err != nil {
				m.log.Warn(ctx, "failed to drop expired entry", "key", key, "error", err)
			}
			return nil, false
		}
		return e.Data, true
	}
	return nil, false
}

// CacheDelete removes key from the cache.
func (m *Manager) CacheDelete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.loadCache(ctx)
	for i, e := range entries {
		if e.Key == key {
			return m.saveCache(ctx, append(entries[:i], entries[i+1:]...))
		}
	}
	return nil
}

// CacheClearExpired removes every entry whose expiry has passed and
// returns how many were dropped.
func (m *Manager) CacheClearExpired(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.loadCache(ctx)
	nowMs := m.now().UnixMilli()

	kept := entries[:0]
	removed := 0
	for _, e := range entries {
		if nowMs > e.ExpiresAt {
			removed++
			continue
		}
		kept = append(kept, e)
	}

	if removed == 0 {
		return 0, nil
	}
	if err := m.saveCache(ctx, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// CacheClearAll empties the cache.
func (m *Manager) CacheClearAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveCache(ctx, []CacheEntry{})
}

// CacheCriticalData copies the critical-key allow-list from the store into
// the cache at high priority, so those records survive going offline.
// Missing keys are skipped.
func (m *Manager) CacheCriticalData(ctx context.Context) error {
	for _, key := range common.CriticalCacheKeys {
		raw, err := m.kv.Get(ctx, key)
		if err != nil {
			m.log.Warn(ctx, "critical key read failed", "key", key, "error", err)
			continue
		}
		if raw == nil {
			continue
		}
		if err := m.CacheSet(ctx, key, raw, PriorityHigh); err != nil {
			m.log.Warn(ctx, "critical key cache failed", "key", key, "error", err)
		}
	}
	return nil
}

func (m *Manager) loadPersistedStatus(ctx context.Context) persistedStatus {
	var st persistedStatus
	raw, err := m.kv.Get(ctx, common.OfflineStatusKey)
	if err != nil || raw == nil {
		return st
	}
	_ = json.Unmarshal(raw, &st)
	return st
}

func (m *Manager) savePersistedStatus(ctx context.Context, st persistedStatus) {
	data, err := json.Marshal(st)
	if err != nil {
		return
	}
	if err := m.kv.Set(ctx, common.OfflineStatusKey, data); err != nil {
		m.log.Warn(ctx, "status write failed", "error", err)
	}
}

// Status recomputes a snapshot from the queue, cache, and network signal.
func (m *Manager) Status(ctx context.Context) Status {
	online := m.CheckNetworkStatus(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	queue := m.loadQueue(ctx)
	entries := m.loadCache(ctx)
	st := m.loadPersistedStatus(ctx)

	return Status{
		IsOnline:        online,
		LastOnlineAt:    st.LastOnlineAt,
		PendingActions:  len(queue),
		CacheSizeBytes:  cacheSize(entries),
		LastSyncAttempt: st.LastSyncAttempt,
	}
}

// cacheConfig returns the persisted cache config, or defaults.
func (m *Manager) cacheConfig(ctx context.Context) CacheConfig {
	raw, err := m.kv.Get(ctx, common.CacheConfigKey)
	if err != nil || raw == nil {
		return DefaultCacheConfig()
	}
	cfg := DefaultCacheConfig()
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return DefaultCacheConfig()
	}
	if cfg.MaxSizeBytes <= 0 {
		return DefaultCacheConfig()
	}
	return cfg
}

// Reset deletes all persisted durability state: queue, cache, status, and
// cache config. Used by factory reset.
func (m *Manager) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	errs := errors.Join(
		m.kv.Delete(ctx, common.OfflineQueueKey),
		m.kv.Delete(ctx, common.OfflineCacheKey),
		m.kv.Delete(ctx, common.OfflineStatusKey),
		m.kv.Delete(ctx, common.CacheConfigKey),
	)
	if errs != nil {
		return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, errs)
	}
	return nil
}

// UpdateCacheConfig persists a new cache budget.
func (m *Manager) UpdateCacheConfig(ctx context.Context, cfg CacheConfig) error {
	if cfg.MaxSizeBytes <= 0 {
		return fmt.Errorf("cache budget must be positive, got %d", cfg.MaxSizeBytes)
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := m.kv.Set(ctx, common.CacheConfigKey, data); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	return nil
}

// sortEntriesForEviction orders entries so the first element is the next
// eviction victim: lowest priority first, oldest first within a priority.
func sortEntriesForEviction(entries []CacheEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Priority.rank() != entries[j].Priority.rank() {
			return entries[i].Priority.rank() < entries[j].Priority.rank()
		}
		return entries[i].Timestamp < entries[j].Timestamp
	})
}
