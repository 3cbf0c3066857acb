package ringcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleCreateRepliesAndLogs(t *testing.T) {
	self := NewAddress(2, 9002)
	coordinator := NewAddress(1, 9001)
	core, tr, st, lg := newTestCore(self, self)

	core.handleCreate(Message{TrID: 5, From: coordinator, Kind: MsgCreate, Key: "k", Value: "v", Replica: ReplicaPrimary}, 0)

	value, ok := st.Read("k")
	require.True(t, ok)
	assert.Equal(t, "v", value)
	assert.Equal(t, 1, lg.createSuccess)

	replies := tr.inboxes[coordinator]
	require.Len(t, replies, 1)
	reply, err := DecodeMessage(replies[0])
	require.NoError(t, err)
	assert.Equal(t, MsgReply, reply.Kind)
	assert.Equal(t, 1, reply.Status)
}

func TestHandleCreateExistingKeyFails(t *testing.T) {
	self := NewAddress(2, 9002)
	coordinator := NewAddress(1, 9001)
	core, tr, st, lg := newTestCore(self, self)
	st.Create("k", "v", 0, ReplicaPrimary)

	core.handleCreate(Message{TrID: 5, From: coordinator, Kind: MsgCreate, Key: "k", Value: "v2"}, 1)

	assert.Equal(t, 1, lg.createFail)
	replies := tr.inboxes[coordinator]
	require.Len(t, replies, 1)
	reply, _ := DecodeMessage(replies[0])
	assert.Equal(t, 0, reply.Status)
}

func TestStabilizationTxIDSuppressesReplyAndLog(t *testing.T) {
	self := NewAddress(2, 9002)
	coordinator := NewAddress(1, 9001)
	core, tr, st, lg := newTestCore(self, self)

	core.handleCreate(Message{TrID: StabilizationTxID, From: coordinator, Kind: MsgCreate, Key: "k", Value: "v"}, 0)

	_, ok := st.Read("k")
	assert.True(t, ok, "the entry is still applied")
	assert.Equal(t, 0, lg.createSuccess, "but no server-side log line is emitted")
	assert.Empty(t, tr.inboxes[coordinator], "and no REPLY is sent")
}

func TestHandleReadMissingKeyReturnsEmptyValue(t *testing.T) {
	self := NewAddress(2, 9002)
	coordinator := NewAddress(1, 9001)
	core, tr, _, lg := newTestCore(self, self)

	core.handleRead(Message{TrID: 1, From: coordinator, Kind: MsgRead, Key: "missing"}, 0)

	assert.Equal(t, 1, lg.readFail)
	replies := tr.inboxes[coordinator]
	require.Len(t, replies, 1)
	reply, _ := DecodeMessage(replies[0])
	assert.Equal(t, MsgReadReply, reply.Kind)
	assert.Equal(t, "", reply.Value)
}

func TestHandleDeleteMissingKeyReturnsStatusZero(t *testing.T) {
	self := NewAddress(2, 9002)
	coordinator := NewAddress(1, 9001)
	core, tr, _, lg := newTestCore(self, self)

	core.handleDelete(Message{TrID: 1, From: coordinator, Kind: MsgDelete, Key: "ghost"}, 0)

	assert.Equal(t, 1, lg.deleteFail)
	replies := tr.inboxes[coordinator]
	require.Len(t, replies, 1)
	reply, _ := DecodeMessage(replies[0])
	assert.Equal(t, 0, reply.Status)
}
