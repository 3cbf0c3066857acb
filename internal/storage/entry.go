package storage

import (
	"fmt"
	"strconv"
	"strings"

	"ringstore/internal/ringcore"
)

const entryDelim = "::"

// encodeEntry packs a value, its timestamp, and its replica tag into the
// single string a snapshot stores per key — preserving the original
// packed-entry storage format on disk, while the in-memory table and every
// in-process caller use the typed fields via record/StorageEntry.
func encodeEntry(value string, t int, replica ringcore.ReplicaType) string {
	return fmt.Sprintf("%s%s%d%s%d", value, entryDelim, t, entryDelim, int(replica))
}

func decodeEntry(packed string) (value string, t int, replica ringcore.ReplicaType, err error) {
	parts := strings.Split(packed, entryDelim)
	if len(parts) != 3 {
		return "", 0, 0, fmt.Errorf("storage: malformed packed entry %q", packed)
	}
	t, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, 0, fmt.Errorf("storage: malformed entry timestamp in %q: %w", packed, err)
	}
	r, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, 0, fmt.Errorf("storage: malformed entry replica tag in %q: %w", packed, err)
	}
	return parts[0], t, ringcore.ReplicaType(r), nil
}
