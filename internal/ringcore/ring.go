package ringcore

// neighbors holds the two neighbor sets: hasMyReplicas (the
// next two ring successors, who hold secondary/tertiary replicas of this
// node's primary keys) and haveReplicasOf (the previous two, whose
// secondary/tertiary replicas this node holds).
type neighbors struct {
	hasMyReplicas  [2]Node
	haveReplicasOf [2]Node
	set            bool
}

// buildRing maps the membership snapshot to sorted Node descriptors.
func buildRing(members []Address) []Node {
	ring := make([]Node, len(members))
	for i, addr := range members {
		ring[i] = Node{Addr: addr, Hash: HashPos(addr.String())}
	}
	sortNodes(ring)
	return ring
}

func sortNodes(ring []Node) {
	for i := 1; i < len(ring); i++ {
		for j := i; j > 0 && ring[j].Less(ring[j-1]); j-- {
			ring[j], ring[j-1] = ring[j-1], ring[j]
		}
	}
}

// selfIndex locates self in ring by address equality, or -1 if absent.
func selfIndex(ring []Node, self Address) int {
	for i, n := range ring {
		if n.Addr == self {
			return i
		}
	}
	return -1
}

// neighborsAt computes haveReplicasOf (previous two, with the index-0/1
// wrap-around cases spelled out below) and hasMyReplicas (next
// two, modulo ring size) for the node at idx.
func neighborsAt(ring []Node, idx int) neighbors {
	n := len(ring)

	var have [2]Node
	switch idx {
	case 0:
		have = [2]Node{ring[n-1], ring[(2*n-2)%n]}
	case 1:
		have = [2]Node{ring[0], ring[n-1]}
	default:
		have = [2]Node{ring[(idx-1)%n], ring[(idx-2+n)%n]}
	}

	has := [2]Node{ring[(idx+1)%n], ring[(idx+2)%n]}

	return neighbors{hasMyReplicas: has, haveReplicasOf: have, set: true}
}

// UpdateRing pulls the current membership, builds the new ring, and
// installs neighbors and/or runs stabilization:
//
//   - First-ever install (local ring empty): adopt the new ring directly
//     and compute neighbors; stabilization does NOT run even if local
//     storage happens to be non-empty.
//   - Subsequent updates: a topology change is declared only when local
//     storage is non-empty AND the new membership's cardinality differs
//     from the current ring's cardinality (bug-compatible with the source;
//     see DESIGN.md). If changed, the ring is replaced and Stabilize runs.
//   - Otherwise the ring (and neighbors) are left untouched.
func (c *Core) UpdateRing() {
	members := c.membership.Members()
	newRing := buildRing(members)

	if len(c.ring) == 0 {
		c.ring = newRing
		if idx := selfIndex(c.ring, c.self); idx >= 0 {
			c.neighbors = neighborsAt(c.ring, idx)
		}
		return
	}

	changed := !c.storage.IsEmpty() && len(newRing) != len(c.ring)
	if !changed {
		return
	}

	c.ring = newRing
	c.Stabilize()
}
