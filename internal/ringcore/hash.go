package ringcore

import "crypto/sha1"

// RingSize is the modulus of the consistent-hash ring. Every
// peer in a deployment must use the same value and the same HashPos
// implementation — self-consistency is all correctness requires here.
const RingSize = 512

// ReplicationFactor is the number of replica holders computed per key.
const ReplicationFactor = 3

// Quorum is the minimum number of successful replies the coordinator needs
// before it reports a client operation successful.
const Quorum = 2

// Timeout is the number of logical ticks after which an undecided
// transaction is declared failed.
const Timeout = 3

// StabilizationTxID is the reserved transaction id used for re-replication
// pushes: it suppresses both the server reply and the server-side log line.
const StabilizationTxID = -100

// HashPos maps a string (a key or an address's wire form) to a ring
// position. It must be identical across every peer of a deployment.
func HashPos(s string) uint64 {
	sum := sha1.Sum([]byte(s))
	var v uint64
	for _, b := range sum[:8] {
		v = v<<8 | uint64(b)
	}
	return v % RingSize
}

// FindNodes returns the primary, secondary, and tertiary holders of key
// given the current ring. It returns nil if the ring has fewer than
// ReplicationFactor members — the caller still registers the transaction,
// which then simply times out with no replies.
func FindNodes(ring []Node, key string) []Node {
	if len(ring) < ReplicationFactor {
		return nil
	}
	return findNodesAt(ring, HashPos(key))
}

// findNodesAt places ring position pos: the primary is the first node whose
// hash is >= pos (wrapping to ring[0]), followed by the next two nodes.
func findNodesAt(ring []Node, pos uint64) []Node {
	primaryIdx := 0
	if pos <= ring[0].Hash || pos > ring[len(ring)-1].Hash {
		primaryIdx = 0
	} else {
		for i := 1; i < len(ring); i++ {
			if pos <= ring[i].Hash {
				primaryIdx = i
				break
			}
		}
	}

	n := len(ring)
	return []Node{
		ring[primaryIdx],
		ring[(primaryIdx+1)%n],
		ring[(primaryIdx+2)%n],
	}
}
