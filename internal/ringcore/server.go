package ringcore

// handleCreate applies an inbound CREATE to local storage and, unless the
// transaction id is StabilizationTxID, replies with status 1 on success or
// 0 on failure. Stabilization pushes reuse CREATE/UPDATE but never want a
// reply or a server-side log line for them.
func (c *Core) handleCreate(msg Message, now int) {
	ok := c.storage.Create(msg.Key, msg.Value, now, msg.Replica)
	if msg.TrID == StabilizationTxID {
		return
	}
	if ok {
		c.logger.LogCreateSuccess(c.self, false, msg.TrID, msg.Key, msg.Value)
	} else {
		c.logger.LogCreateFail(c.self, false, msg.TrID, msg.Key, msg.Value)
	}
	c.send(msg.From, Message{TrID: msg.TrID, From: c.self, Kind: MsgReply, Status: boolToStatus(ok)})
}

// handleUpdate mirrors handleCreate for UPDATE.
func (c *Core) handleUpdate(msg Message, now int) {
	ok := c.storage.Update(msg.Key, msg.Value, now, msg.Replica)
	if msg.TrID == StabilizationTxID {
		return
	}
	if ok {
		c.logger.LogUpdateSuccess(c.self, false, msg.TrID, msg.Key, msg.Value)
	} else {
		c.logger.LogUpdateFail(c.self, false, msg.TrID, msg.Key, msg.Value)
	}
	c.send(msg.From, Message{TrID: msg.TrID, From: c.self, Kind: MsgReply, Status: boolToStatus(ok)})
}

// handleRead replies with a READREPLY carrying the value on a hit, or an
// empty value on a miss; a READ always replies, even an untagged one,
// since there is no stabilization use for READ.
func (c *Core) handleRead(msg Message, _ int) {
	value, ok := c.storage.Read(msg.Key)
	if ok {
		c.logger.LogReadSuccess(c.self, false, msg.TrID, msg.Key, value)
	} else {
		c.logger.LogReadFail(c.self, false, msg.TrID, msg.Key)
	}
	c.send(msg.From, Message{TrID: msg.TrID, From: c.self, Kind: MsgReadReply, Value: value})
}

// handleDelete always replies, with status reflecting whether the key was
// present to remove.
func (c *Core) handleDelete(msg Message, _ int) {
	ok := c.storage.Delete(msg.Key)
	if ok {
		c.logger.LogDeleteSuccess(c.self, false, msg.TrID, msg.Key)
	} else {
		c.logger.LogDeleteFail(c.self, false, msg.TrID, msg.Key)
	}
	c.send(msg.From, Message{TrID: msg.TrID, From: c.self, Kind: MsgReply, Status: boolToStatus(ok)})
}

func boolToStatus(ok bool) int {
	if ok {
		return 1
	}
	return 0
}
