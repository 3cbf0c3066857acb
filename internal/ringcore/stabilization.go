package ringcore

// Stabilize recomputes this node's neighbor sets against the freshly
// installed ring and re-pushes every locally held PRIMARY-tagged key to
// whichever nodes now hold the secondary/tertiary slots, tagged SECONDARY
// or TERTIARY to match the slot.
//
// For each of the two successor slots, a node that already held that slot
// under the old assignment gets an UPDATE (it is presumed to already carry
// a stale copy); a node newly assigned the slot gets a CREATE. The lookup
// scans the full old hasMyReplicas set, not a truncated one — a change
// from the one-line original, which searched a range that was always
// empty and so treated every successor as new.
//
// Pushed frames carry StabilizationTxID so the receiving server applies
// them silently: no reply, no server-side log line.
func (c *Core) Stabilize() {
	idx := selfIndex(c.ring, c.self)
	if idx < 0 {
		return
	}

	old := c.neighbors
	fresh := neighborsAt(c.ring, idx)

	for j := 0; j < 2; j++ {
		successor := fresh.hasMyReplicas[j]
		if old.set && old.hasMyReplicas[j] == successor {
			continue
		}

		kind := MsgCreate
		if old.set && nodeIn(old.hasMyReplicas[:], successor) {
			kind = MsgUpdate
		}

		for _, e := range c.storage.Entries() {
			if e.Replica != ReplicaPrimary {
				continue
			}
			c.send(successor.Addr, Message{
				TrID: StabilizationTxID, From: c.self, Kind: kind,
				Key: e.Key, Value: e.Value, Replica: ReplicaType(j + 1),
			})
		}
	}

	c.neighbors = fresh
}

func nodeIn(nodes []Node, target Node) bool {
	for _, n := range nodes {
		if n == target {
			return true
		}
	}
	return false
}
