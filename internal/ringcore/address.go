package ringcore

import (
	"fmt"
	"strconv"
	"strings"
)

// Address is the opaque 6-byte peer identifier: a 4-byte id
// and a 2-byte port, treated here as a value type with a stable "id:port"
// wire form.
type Address struct {
	ID   uint32
	Port uint16
}

// NewAddress builds an Address from its numeric parts.
func NewAddress(id uint32, port uint16) Address {
	return Address{ID: id, Port: port}
}

// String renders the address in the "id:port" wire form used by the codec.
func (a Address) String() string {
	return fmt.Sprintf("%d:%d", a.ID, a.Port)
}

// ParseAddress parses the "id:port" wire form produced by String.
func ParseAddress(s string) (Address, error) {
	idStr, portStr, ok := strings.Cut(s, ":")
	if !ok {
		return Address{}, fmt.Errorf("ringcore: malformed address %q", s)
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return Address{}, fmt.Errorf("ringcore: malformed address id %q: %w", s, err)
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return Address{}, fmt.Errorf("ringcore: malformed address port %q: %w", s, err)
	}
	return Address{ID: uint32(id), Port: uint16(port)}, nil
}

// Node is a descriptor of one ring member: its address and the ring
// position that address hashes to.
type Node struct {
	Addr Address
	Hash uint64
}

// Less orders nodes ascending by hash, ties broken by address — the ring's
// total order.
func (n Node) Less(other Node) bool {
	if n.Hash != other.Hash {
		return n.Hash < other.Hash
	}
	return n.Addr.String() < other.Addr.String()
}
