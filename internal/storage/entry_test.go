package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ringstore/internal/ringcore"
)

func TestEncodeDecodeEntryRoundTrip(t *testing.T) {
	packed := encodeEntry("fruit", 42, ringcore.ReplicaSecondary)
	assert.Equal(t, "fruit::42::2", packed)

	value, ts, replica, err := decodeEntry(packed)
	require.NoError(t, err)
	assert.Equal(t, "fruit", value)
	assert.Equal(t, 42, ts)
	assert.Equal(t, ringcore.ReplicaSecondary, replica)
}

func TestDecodeEntryMalformedReturnsError(t *testing.T) {
	_, _, _, err := decodeEntry("justavalue")
	assert.Error(t, err)
}

func TestDecodeEntryBadTimestampReturnsError(t *testing.T) {
	_, _, _, err := decodeEntry("v::not-a-number::1")
	assert.Error(t, err)
}
