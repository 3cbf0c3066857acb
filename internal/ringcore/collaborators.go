package ringcore

// Transport is the non-blocking message channel a node sends frames
// through and drains inbound frames from. The network emulator, and any
// real transport, implement this.
type Transport interface {
	// Send delivers an encoded frame from one address to another.
	// Non-blocking: a dropped message never blocks the caller, it just
	// manifests later as a missing reply.
	Send(from, to Address, frame string)

	// Recv drains and returns every frame queued for self since the last
	// call, in FIFO order.
	Recv(self Address) []string
}

// StorageEntry is the typed, in-process view of the storage layer's Entry
// (value, timestamp, replica_type). The wire/storage-string encoding
// is the Storage collaborator's concern, not Core's.
type StorageEntry struct {
	Key     string
	Value   string
	Time    int
	Replica ReplicaType
}

// Storage is the local hash-table storage engine: a
// string-to-string map with CRUD semantics plus the enumeration
// stabilization needs to find local PRIMARY keys.
type Storage interface {
	Create(key, value string, now int, replica ReplicaType) bool
	Read(key string) (string, bool)
	Update(key, value string, now int, replica ReplicaType) bool
	Delete(key string) bool
	IsEmpty() bool
	// Entries enumerates every locally held key with its typed Entry.
	Entries() []StorageEntry
}

// Logger is the eight-operation sink. coordinatorSide distinguishes the
// client-facing decision log line from the storage-server log line, which
// tests depend on to tell the two apart.
type Logger interface {
	LogCreateSuccess(addr Address, coordinatorSide bool, trID int, key, value string)
	LogCreateFail(addr Address, coordinatorSide bool, trID int, key, value string)
	LogReadSuccess(addr Address, coordinatorSide bool, trID int, key, value string)
	LogReadFail(addr Address, coordinatorSide bool, trID int, key string)
	LogUpdateSuccess(addr Address, coordinatorSide bool, trID int, key, value string)
	LogUpdateFail(addr Address, coordinatorSide bool, trID int, key, value string)
	LogDeleteSuccess(addr Address, coordinatorSide bool, trID int, key string)
	LogDeleteFail(addr Address, coordinatorSide bool, trID int, key string)
}

// MembershipProvider supplies the believed-live peer list.
// Core reads it once per Tick and never mutates it.
type MembershipProvider interface {
	Members() []Address
}
