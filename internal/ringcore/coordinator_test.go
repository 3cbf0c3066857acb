package ringcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCore(self Address, members ...Address) (*Core, *fakeTransport, *fakeStorage, *fakeLogger) {
	tr := newFakeTransport()
	st := newFakeStorage()
	lg := &fakeLogger{}
	core := New(self, tr, st, lg, &fakeMembership{addrs: members})
	core.UpdateRing()
	return core, tr, st, lg
}

// Three-node single write: two successful REPLYs reach quorum and the
// coordinator logs success on the next sweep.
func TestCoordinatorCreateQuorumSuccess(t *testing.T) {
	a, b, c := NewAddress(1, 9001), NewAddress(2, 9002), NewAddress(3, 9003)
	core, tr, _, lg := newTestCore(a, a, b, c)

	id := core.Create("apple", "fruit", 0)
	require.Len(t, tr.inboxes[b], 1, "secondary/tertiary or primary should have received a CREATE")

	// Two of the three replicas answer with status 1; deliver to self's inbox.
	tr.Send(b, a, Message{TrID: id, From: b, Kind: MsgReply, Status: 1}.Encode())
	tr.Send(c, a, Message{TrID: id, From: c, Kind: MsgReply, Status: 1}.Encode())

	core.Tick(1)

	assert.Equal(t, 1, lg.coord.createSuccess)
	assert.Equal(t, 0, lg.coord.createFail)
	found, decided, succeeded, _ := core.TransactionResult(id)
	assert.True(t, found)
	assert.True(t, decided)
	assert.True(t, succeeded)
}

// Only one REPLY arrives; at t=8 (>= start 5 + timeout 3) sweep logs failure.
func TestCoordinatorUpdateQuorumFailureOnTimeout(t *testing.T) {
	a, b, c := NewAddress(1, 9001), NewAddress(2, 9002), NewAddress(3, 9003)
	core, tr, _, lg := newTestCore(a, a, b, c)

	id := core.Update("x", "v", 5)
	tr.Send(b, a, Message{TrID: id, From: b, Kind: MsgReply, Status: 1}.Encode())

	core.Tick(6)
	core.Tick(7)
	assert.Equal(t, 0, lg.coord.updateFail, "must not fail before the deadline")

	core.Tick(8)
	assert.Equal(t, 1, lg.coord.updateFail)
	assert.Equal(t, 0, lg.coord.updateSuccess)
}

// All three replicas report absence (status 0): num_successful_replies stays
// 0 and the coordinator logs delete failure at the deadline.
func TestCoordinatorDeleteOfMissingKey(t *testing.T) {
	a, b, c := NewAddress(1, 9001), NewAddress(2, 9002), NewAddress(3, 9003)
	core, tr, _, lg := newTestCore(a, a, b, c)

	id := core.Delete("ghost", 0)
	tr.Send(b, a, Message{TrID: id, From: b, Kind: MsgReply, Status: 0}.Encode())
	tr.Send(c, a, Message{TrID: id, From: c, Kind: MsgReply, Status: 0}.Encode())

	core.Tick(3)
	assert.Equal(t, 1, lg.coord.deleteFail)
	assert.Equal(t, 0, lg.coord.deleteSuccess)
}

// Two empty READREPLYs and one non-empty: replies stays below quorum, so
// the read still fails at timeout despite a non-empty aggregated value.
func TestCoordinatorReadOneNonEmptyAmongThreeStillFails(t *testing.T) {
	a, b, c := NewAddress(1, 9001), NewAddress(2, 9002), NewAddress(3, 9003)
	core, tr, _, lg := newTestCore(a, a, b, c)

	id := core.Read("k", 0)
	tr.Send(b, a, Message{TrID: id, From: b, Kind: MsgReadReply, Value: ""}.Encode())
	tr.Send(c, a, Message{TrID: id, From: c, Kind: MsgReadReply, Value: "v"}.Encode())

	core.Tick(3)
	assert.Equal(t, 1, lg.coord.readFail)
	assert.Equal(t, 0, lg.coord.readSuccess)
}

// Transaction ids handed out by one node are strictly increasing.
func TestTransactionIDsStrictlyIncreasing(t *testing.T) {
	a, b, c := NewAddress(1, 9001), NewAddress(2, 9002), NewAddress(3, 9003)
	core, _, _, _ := newTestCore(a, a, b, c)

	id1 := core.Create("k1", "v1", 0)
	id2 := core.Create("k2", "v2", 0)
	id3 := core.Read("k1", 0)
	assert.Less(t, id1, id2)
	assert.Less(t, id2, id3)
}

// Ring of size < 3: FindNodes returns nil so no frames go out, and the
// transaction still times out and logs failure rather than hanging forever.
func TestClientOpsTimeOutWhenRingTooSmall(t *testing.T) {
	a, b := NewAddress(1, 9001), NewAddress(2, 9002)
	core, tr, _, lg := newTestCore(a, a, b)

	id := core.Create("k", "v", 0)
	assert.Empty(t, tr.inboxes[b])

	core.Tick(3)
	assert.Equal(t, 1, lg.coord.createFail)
	found, decided, succeeded, _ := core.TransactionResult(id)
	assert.True(t, found)
	assert.True(t, decided)
	assert.False(t, succeeded)
}
