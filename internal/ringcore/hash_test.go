package ringcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mkRing(hashes ...uint64) []Node {
	ring := make([]Node, len(hashes))
	for i, h := range hashes {
		ring[i] = Node{Addr: NewAddress(uint32(i), uint16(9000+i)), Hash: h}
	}
	return ring
}

func TestFindNodesInsufficientRing(t *testing.T) {
	ring := mkRing(10, 20)
	assert.Nil(t, FindNodes(ring, "anything"))
}

func TestFindNodesAtOrigin(t *testing.T) {
	ring := mkRing(10, 20, 30)
	// hash_pos == ring[0].hash selects ring[0] as primary.
	nodes := findNodesAt(ring, 10)
	assert.Equal(t, ring[0], nodes[0])
	assert.Equal(t, ring[1], nodes[1])
	assert.Equal(t, ring[2], nodes[2])
}

func TestFindNodesWraparound(t *testing.T) {
	ring := mkRing(10, 20, 30)
	// hash_pos beyond the last entry wraps to primary = ring[0].
	nodes := findNodesAt(ring, 31)
	assert.Equal(t, ring[0], nodes[0])
}

func TestFindNodesMiddle(t *testing.T) {
	ring := mkRing(10, 20, 30)
	nodes := findNodesAt(ring, 15)
	assert.Equal(t, ring[1], nodes[0], "15 should land on the first node whose hash is >= it")
	assert.Equal(t, ring[2], nodes[1])
	assert.Equal(t, ring[0], nodes[2], "tertiary wraps back to index 0")
}

func TestFindNodesDistinctAddresses(t *testing.T) {
	ring := mkRing(5, 50, 500, 5000)
	nodes := FindNodes(ring, "some-key")
	assert.Len(t, nodes, ReplicationFactor)
	seen := map[Address]bool{}
	for _, n := range nodes {
		assert.False(t, seen[n.Addr], "addresses must be pairwise distinct")
		seen[n.Addr] = true
	}
}

func TestHashPosStable(t *testing.T) {
	a := HashPos("apple")
	b := HashPos("apple")
	assert.Equal(t, a, b)
	assert.Less(t, a, uint64(RingSize))
}
