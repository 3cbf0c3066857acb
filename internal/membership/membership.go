// Package membership tracks which addresses are believed to be live peers.
// Static membership, updated by explicit Join/Leave calls, is the right
// starting point here; a gossip layer (SWIM/Serf-style) would sit behind
// the same ringcore.MembershipProvider interface without Core noticing.
package membership

import (
	"fmt"
	"sync"

	"ringstore/internal/ringcore"
)

// Static is a mutex-guarded set of live peer addresses.
type Static struct {
	mu      sync.RWMutex
	members map[ringcore.Address]struct{}
}

// New seeds a Static membership list with the given addresses.
func New(addrs []ringcore.Address) *Static {
	s := &Static{members: make(map[ringcore.Address]struct{}, len(addrs))}
	for _, a := range addrs {
		s.members[a] = struct{}{}
	}
	return s
}

// Join adds addr to the believed-live set.
func (s *Static) Join(addr ringcore.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[addr]; ok {
		return fmt.Errorf("membership: %s already joined", addr)
	}
	s.members[addr] = struct{}{}
	return nil
}

// Leave removes addr from the believed-live set.
func (s *Static) Leave(addr ringcore.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[addr]; !ok {
		return fmt.Errorf("membership: %s not a member", addr)
	}
	delete(s.members, addr)
	return nil
}

// Members returns a snapshot of every currently live address. Order is
// unspecified; Core sorts it into ring order on its own.
func (s *Static) Members() []ringcore.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ringcore.Address, 0, len(s.members))
	for a := range s.members {
		out = append(out, a)
	}
	return out
}
