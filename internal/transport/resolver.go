package transport

import "ringstore/internal/ringcore"

// StaticResolver is a fixed Address-to-baseURL lookup table, built once at
// startup from the configured peer list.
type StaticResolver map[ringcore.Address]string

// BaseURL implements PeerResolver.
func (r StaticResolver) BaseURL(addr ringcore.Address) (string, bool) {
	url, ok := r[addr]
	return url, ok
}
