package ringcore

// Create issues a client CREATE: it finds the three replica holders of key,
// sends one CREATE per replica tagged PRIMARY/SECONDARY/TERTIARY in that
// order, and registers the transaction.
func (c *Core) Create(key, value string, now int) int {
	return c.fanOutWrite(MsgCreate, key, value, now)
}

// Update issues a client UPDATE, identical fan-out shape to Create.
func (c *Core) Update(key, value string, now int) int {
	return c.fanOutWrite(MsgUpdate, key, value, now)
}

func (c *Core) fanOutWrite(kind MessageKind, key, value string, now int) int {
	id := c.allocTxID()
	nodes := FindNodes(c.ring, key)

	replicas := []ReplicaType{ReplicaPrimary, ReplicaSecondary, ReplicaTertiary}
	for i, n := range nodes {
		c.send(n.Addr, Message{TrID: id, From: c.self, Kind: kind, Key: key, Value: value, Replica: replicas[i]})
	}

	c.reg.put(&Transaction{ID: id, Kind: kind, Key: key, Value: value, StartTime: now, Active: true})
	return id
}

// Read issues a client READ: three untagged READ frames, fanned out in
// ring order.
func (c *Core) Read(key string, now int) int {
	id := c.allocTxID()
	nodes := FindNodes(c.ring, key)
	for _, n := range nodes {
		c.send(n.Addr, Message{TrID: id, From: c.self, Kind: MsgRead, Key: key})
	}
	c.reg.put(&Transaction{ID: id, Kind: MsgRead, Key: key, StartTime: now, Active: true})
	return id
}

// Delete issues a client DELETE: three untagged DELETE frames.
func (c *Core) Delete(key string, now int) int {
	id := c.allocTxID()
	nodes := FindNodes(c.ring, key)
	for _, n := range nodes {
		c.send(n.Addr, Message{TrID: id, From: c.self, Kind: MsgDelete, Key: key})
	}
	c.reg.put(&Transaction{ID: id, Kind: MsgDelete, Key: key, StartTime: now, Active: true})
	return id
}

// handleReply applies an inbound REPLY to the originating transaction:
// status 1 increments the reply count, anything else is ignored.
func (c *Core) handleReply(msg Message) {
	tr, ok := c.reg.get(msg.TrID)
	if !ok {
		return
	}
	if msg.Status == 1 {
		tr.Replies++
	}
}

// handleReadReply applies an inbound READREPLY: a non-empty value
// increments the reply count and becomes the transaction's aggregated
// value (last-seen wins); an empty value clears it.
func (c *Core) handleReadReply(msg Message) {
	tr, ok := c.reg.get(msg.TrID)
	if !ok {
		return
	}
	if msg.Value != "" {
		tr.Replies++
		tr.ReadValue = msg.Value
	} else {
		tr.ReadValue = ""
	}
}

// sweep is the per-tick coordinator decision engine:
// success (replies >= Quorum) is checked before timeout, so a quorum
// reached at or before the deadline always wins.
func (c *Core) sweep(now int) {
	for _, tr := range c.reg.active() {
		switch {
		case tr.Replies >= Quorum:
			c.decideSuccess(tr)
		case now >= tr.StartTime+Timeout:
			c.decideTimeout(tr)
		}
	}
}

func (c *Core) decideSuccess(tr *Transaction) {
	succeeded := true
	switch tr.Kind {
	case MsgCreate:
		c.logger.LogCreateSuccess(c.self, true, tr.ID, tr.Key, tr.Value)
	case MsgUpdate:
		c.logger.LogUpdateSuccess(c.self, true, tr.ID, tr.Key, tr.Value)
	case MsgDelete:
		c.logger.LogDeleteSuccess(c.self, true, tr.ID, tr.Key)
	case MsgRead:
		if tr.ReadValue != "" {
			c.logger.LogReadSuccess(c.self, true, tr.ID, tr.Key, tr.ReadValue)
		} else {
			c.logger.LogReadFail(c.self, true, tr.ID, tr.Key)
			succeeded = false
		}
	}
	tr.Active = false
	tr.Decided = true
	tr.Succeeded = succeeded
}

func (c *Core) decideTimeout(tr *Transaction) {
	switch tr.Kind {
	case MsgCreate:
		c.logger.LogCreateFail(c.self, true, tr.ID, tr.Key, tr.Value)
	case MsgUpdate:
		c.logger.LogUpdateFail(c.self, true, tr.ID, tr.Key, tr.Value)
	case MsgDelete:
		c.logger.LogDeleteFail(c.self, true, tr.ID, tr.Key)
	case MsgRead:
		c.logger.LogReadFail(c.self, true, tr.ID, tr.Key)
	}
	tr.Active = false
	tr.Decided = true
	tr.Succeeded = false
}

// TransactionResult reports a previously issued transaction's outcome:
// found is false if id was never registered; decided is false while it is
// still awaiting replies or a timeout. succeeded and value are only
// meaningful once decided is true (value is the aggregated READ result,
// empty for every other kind).
func (c *Core) TransactionResult(id int) (found, decided, succeeded bool, value string) {
	tr, ok := c.reg.get(id)
	if !ok {
		return false, false, false, ""
	}
	return true, tr.Decided, tr.Succeeded, tr.ReadValue
}
