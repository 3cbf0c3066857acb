package storage

import (
	"encoding/json"
	"os"

	"ringstore/internal/ringcore"
)

// record is the typed, in-process view of one stored entry.
type record struct {
	Value   string
	Time    int
	Replica int
}

// snapshotManager persists the table as a plain string-to-string map —
// each value is the packed "value::time::replica" form encodeEntry
// produces — mirroring the string-to-string storage boundary described for
// this collaborator, even though the in-memory table holds typed records.
type snapshotManager struct {
	path string
}

func newSnapshotManager(path string) *snapshotManager {
	return &snapshotManager{path: path}
}

func (s *snapshotManager) save(table map[string]record) error {
	packed := make(map[string]string, len(table))
	for k, r := range table {
		packed[k] = encodeEntry(r.Value, r.Time, ringcore.ReplicaType(r.Replica))
	}

	data, err := json.Marshal(packed)
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}

	// Atomic rename: a crash between write and rename leaves the previous
	// snapshot intact.
	return os.Rename(tmp, s.path)
}

func (s *snapshotManager) load() (map[string]record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var packed map[string]string
	if err := json.Unmarshal(data, &packed); err != nil {
		return nil, err
	}

	table := make(map[string]record, len(packed))
	for k, p := range packed {
		value, t, replica, err := decodeEntry(p)
		if err != nil {
			return nil, err
		}
		table[k] = record{Value: value, Time: t, Replica: int(replica)}
	}
	return table, nil
}
