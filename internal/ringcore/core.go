package ringcore

// Core is one node's coordination and replication engine: it is both a
// coordinator for requests it originates and a server for keys that map
// onto it. A host scheduler owns the only entry point, Tick; Core never
// blocks and never starts a goroutine.
type Core struct {
	self Address

	transport  Transport
	storage    Storage
	logger     Logger
	membership MembershipProvider

	ring      []Node
	neighbors neighbors

	reg    *registry
	nextID int
	now    int
}

// New builds a Core for self, wired to its external collaborators.
func New(self Address, transport Transport, storage Storage, logger Logger, membership MembershipProvider) *Core {
	return &Core{
		self:       self,
		transport:  transport,
		storage:    storage,
		logger:     logger,
		membership: membership,
		reg:        newRegistry(),
	}
}

// Self returns this node's address.
func (c *Core) Self() Address { return c.self }

// Ring returns a copy of the current ring view, read-only for callers.
// Mutating it here would desync Core's own view from what it just returned.
func (c *Core) Ring() []Node {
	out := make([]Node, len(c.ring))
	copy(out, c.ring)
	return out
}

// allocTxID hands out a fresh, per-node monotonically increasing
// transaction id. Per-node, not a process-wide global counter.
func (c *Core) allocTxID() int {
	id := c.nextID
	c.nextID++
	return id
}

// Tick is the single cooperatively scheduled step:
//  1. Drain every inbound frame and dispatch it (server handler or
//     coordinator reply aggregation).
//  2. Run the coordinator's quorum/timeout decision sweep.
//  3. Pull the current membership and, if the topology changed,
//     reassign neighbors and stabilize.
//
// now is the logical clock value for this tick; all deadlines are
// expressed in these units.
func (c *Core) Tick(now int) {
	c.now = now

	for _, frame := range c.transport.Recv(c.self) {
		msg, err := DecodeMessage(frame)
		if err != nil {
			continue // malformed frame: dropped silently
		}
		c.dispatch(msg, now)
	}

	c.sweep(now)
	c.UpdateRing()
}

// Now returns the logical tick value as of the most recent Tick call, for
// callers (the client-facing API) that need to stamp a new transaction's
// start time between ticks.
func (c *Core) Now() int { return c.now }

func (c *Core) dispatch(msg Message, now int) {
	switch msg.Kind {
	case MsgCreate:
		c.handleCreate(msg, now)
	case MsgUpdate:
		c.handleUpdate(msg, now)
	case MsgRead:
		c.handleRead(msg, now)
	case MsgDelete:
		c.handleDelete(msg, now)
	case MsgReply:
		c.handleReply(msg)
	case MsgReadReply:
		c.handleReadReply(msg)
	}
}

func (c *Core) send(to Address, msg Message) {
	c.transport.Send(c.self, to, msg.Encode())
}
