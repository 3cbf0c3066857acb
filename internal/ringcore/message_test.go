package ringcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRoundTripCreate(t *testing.T) {
	m := Message{TrID: 7, From: NewAddress(1, 9001), Kind: MsgCreate, Key: "k", Value: "v", Replica: ReplicaSecondary}
	decoded, err := DecodeMessage(m.Encode())
	require.NoError(t, err)
	assert.Equal(t, m, decoded)
}

func TestMessageRoundTripRead(t *testing.T) {
	m := Message{TrID: 1, From: NewAddress(2, 9002), Kind: MsgRead, Key: "k"}
	decoded, err := DecodeMessage(m.Encode())
	require.NoError(t, err)
	assert.Equal(t, m, decoded)
}

func TestMessageRoundTripReply(t *testing.T) {
	m := Message{TrID: 1, From: NewAddress(2, 9002), Kind: MsgReply, Status: 1}
	decoded, err := DecodeMessage(m.Encode())
	require.NoError(t, err)
	assert.Equal(t, m, decoded)
}

func TestMessageRoundTripReadReply(t *testing.T) {
	m := Message{TrID: 1, From: NewAddress(2, 9002), Kind: MsgReadReply, Value: "fruit"}
	decoded, err := DecodeMessage(m.Encode())
	require.NoError(t, err)
	assert.Equal(t, m, decoded)
}

func TestDecodeMalformedFrameReturnsError(t *testing.T) {
	_, err := DecodeMessage("not-a-frame")
	assert.Error(t, err)
}

func TestDecodeShortFrameReturnsError(t *testing.T) {
	_, err := DecodeMessage("1::1:9001")
	assert.Error(t, err)
}

func TestDecodeUnknownKindReturnsError(t *testing.T) {
	_, err := DecodeMessage("1::1:9001::99::k")
	assert.Error(t, err)
}
