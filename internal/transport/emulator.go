// Package transport supplies the two ringcore.Transport implementations
// this module ships: an in-process emulator for tests and the simulate
// harness, and an HTTP transport for real multi-process deployments.
package transport

import (
	"sync"

	"ringstore/internal/ringcore"
)

// Emulator is an in-memory, non-blocking message bus connecting every node
// in a single process. Send never fails and never blocks: it appends to the
// recipient's inbox queue, which Recv later drains. A target address with
// no registered inbox silently discards the frame, modeling a dead peer.
type Emulator struct {
	mu      sync.Mutex
	inboxes map[ringcore.Address][]string
}

// NewEmulator returns an empty bus; call Register for every participating
// address before ticking.
func NewEmulator() *Emulator {
	return &Emulator{inboxes: make(map[ringcore.Address][]string)}
}

// Register creates an inbox for addr so frames sent to it are retained.
func (e *Emulator) Register(addr ringcore.Address) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.inboxes[addr]; !ok {
		e.inboxes[addr] = nil
	}
}

// Send appends frame to to's inbox, or drops it if to was never registered.
func (e *Emulator) Send(_, to ringcore.Address, frame string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.inboxes[to]; !ok {
		return
	}
	e.inboxes[to] = append(e.inboxes[to], frame)
}

// Recv drains and returns every frame queued for self since the last call.
func (e *Emulator) Recv(self ringcore.Address) []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	frames := e.inboxes[self]
	e.inboxes[self] = nil
	return frames
}
