// Package offline implements the offline-durability layer: a persisted
// queue of mutations made without connectivity, a bounded expiring read
// cache, and a network watcher that reconciles the queue when the network
// returns.
//
// # Overview
//
// Writes made while offline are enqueued as Actions and replayed in
// insertion order by DrainQueue once a reachability probe reports the
// network back. An action that keeps failing is parked as failed after
// three attempts but never dropped, so pending work stays visible. Reads
// are served from a priority-classified cache whose total serialized size
// is held under a byte budget by evicting lowest-priority, oldest entries
// first.
//
// Queue and cache are read, mutated in memory, and written back whole; the
// Manager serializes its own mutations with an internal mutex, which is the
// single-writer constraint that pattern requires.
//
// # Failure semantics
//
// A corrupted queue or cache degrades to an empty collection (logged), so
// durability bookkeeping never blocks new reads or writes. Remote-apply
// failures are retried up to the ceiling and then parked, never discarded.
package offline
