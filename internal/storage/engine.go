// Package storage is the local hash-table storage engine each node's Core
// holds behind the ringcore.Storage interface. It durably records every
// mutation to a write-ahead log before applying it in memory, and can
// compact that log into a snapshot to bound recovery time.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"ringstore/internal/ringcore"
)

// Engine is an in-memory key/value table with WAL-backed durability. It
// implements ringcore.Storage.
type Engine struct {
	mu      sync.RWMutex
	table   map[string]record
	wal     *wal
	snap    *snapshotManager
	dataDir string
}

// Open creates or recovers an Engine rooted at dataDir: load the latest
// snapshot, open the WAL, then replay whatever was appended after that
// snapshot was taken.
func Open(dataDir string) (*Engine, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("storage: create data dir: %w", err)
	}

	e := &Engine{
		table:   make(map[string]record),
		snap:    newSnapshotManager(filepath.Join(dataDir, "snapshot.json")),
		dataDir: dataDir,
	}

	loaded, err := e.snap.load()
	if err != nil {
		return nil, fmt.Errorf("storage: load snapshot: %w", err)
	}
	if loaded != nil {
		e.table = loaded
	}

	w, err := openWAL(filepath.Join(dataDir, "wal.log"))
	if err != nil {
		return nil, fmt.Errorf("storage: open wal: %w", err)
	}
	e.wal = w

	entries, err := w.readAll()
	if err != nil {
		return nil, fmt.Errorf("storage: replay wal: %w", err)
	}
	for _, en := range entries {
		e.applyEntry(en)
	}

	return e, nil
}

func (e *Engine) applyEntry(en walEntry) {
	switch en.Op {
	case opCreate, opUpdate:
		e.table[en.Key] = record{Value: en.Value, Time: en.Time, Replica: int(en.Replica)}
	case opDelete:
		delete(e.table, en.Key)
	}
}

// Create inserts key if absent. It fails if the key already exists, matching
// CREATE semantics (a re-CREATE of an existing key is a no-op failure, not
// an overwrite).
func (e *Engine) Create(key, value string, now int, replica ringcore.ReplicaType) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.table[key]; exists {
		return false
	}

	if err := e.wal.append(walEntry{Op: opCreate, Key: key, Value: value, Time: now, Replica: replica}); err != nil {
		return false
	}
	e.table[key] = record{Value: value, Time: now, Replica: int(replica)}
	return true
}

// Read returns the current value for key, if present.
func (e *Engine) Read(key string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	r, ok := e.table[key]
	if !ok {
		return "", false
	}
	return r.Value, true
}

// Update overwrites an existing key's value. It fails if the key is absent;
// UPDATE never creates.
func (e *Engine) Update(key, value string, now int, replica ringcore.ReplicaType) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.table[key]; !exists {
		return false
	}

	if err := e.wal.append(walEntry{Op: opUpdate, Key: key, Value: value, Time: now, Replica: replica}); err != nil {
		return false
	}
	e.table[key] = record{Value: value, Time: now, Replica: int(replica)}
	return true
}

// Delete removes key, reporting whether it was present.
func (e *Engine) Delete(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.table[key]; !exists {
		return false
	}

	if err := e.wal.append(walEntry{Op: opDelete, Key: key}); err != nil {
		return false
	}
	delete(e.table, key)
	return true
}

// IsEmpty reports whether the engine holds no keys at all.
func (e *Engine) IsEmpty() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.table) == 0
}

// Entries enumerates every locally held key as a typed StorageEntry, used
// by stabilization to find this node's PRIMARY-tagged keys.
func (e *Engine) Entries() []ringcore.StorageEntry {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]ringcore.StorageEntry, 0, len(e.table))
	for k, r := range e.table {
		out = append(out, ringcore.StorageEntry{
			Key:     k,
			Value:   r.Value,
			Time:    r.Time,
			Replica: ringcore.ReplicaType(r.Replica),
		})
	}
	return out
}

// Snapshot compacts the WAL: it writes the full table to disk, then
// truncates the log, bounding the entries a future Open has to replay.
func (e *Engine) Snapshot() error {
	e.mu.RLock()
	table := make(map[string]record, len(e.table))
	for k, v := range e.table {
		table[k] = v
	}
	e.mu.RUnlock()

	if err := e.snap.save(table); err != nil {
		return fmt.Errorf("storage: save snapshot: %w", err)
	}
	return e.wal.truncate()
}

// Close releases the WAL file handle.
func (e *Engine) Close() error {
	return e.wal.close()
}
