// Package config loads a node's flags: identity, listen address, peer list,
// and the tick/snapshot cadence. Everything is flag driven, the way the
// rest of this module's lineage configures its binaries, so a single
// binary image can serve any role in the ring.
package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"ringstore/internal/ringcore"
)

// Peer is one entry of the --peers flag: a ring address plus the base URL
// of the process hosting it.
type Peer struct {
	Addr    ringcore.Address
	BaseURL string
}

// Config is a single node's startup configuration.
type Config struct {
	ID      uint32
	Port    uint16
	Listen  string
	DataDir string
	Peers   []Peer

	TickIntervalMS     int
	SnapshotIntervalMS int
}

// Self returns this node's ring address.
func (c Config) Self() ringcore.Address {
	return ringcore.NewAddress(c.ID, c.Port)
}

// Load parses flags into a Config.
//
// Example — three-node ring:
//
//	./node -id 1 -port 9001 -listen :9001 -data-dir /tmp/ring/1 \
//	       -peers 2:9002=http://localhost:9002,3:9003=http://localhost:9003
//	./node -id 2 -port 9002 -listen :9002 -data-dir /tmp/ring/2 \
//	       -peers 1:9001=http://localhost:9001,3:9003=http://localhost:9003
func Load() (Config, error) {
	id := flag.Uint("id", 1, "this node's numeric ring id")
	port := flag.Uint("port", 9001, "this node's ring port (used for hashing, may differ from -listen)")
	listen := flag.String("listen", ":9001", "HTTP listen address")
	dataDir := flag.String("data-dir", "/tmp/ringstore", "directory for the WAL and snapshots")
	peersFlag := flag.String("peers", "", "comma-separated id:port=baseURL peer list")
	tickMS := flag.Int("tick-ms", 200, "milliseconds between logical ticks")
	snapMS := flag.Int("snapshot-ms", 60000, "milliseconds between storage snapshots")
	flag.Parse()

	cfg := Config{
		ID:                 uint32(*id),
		Port:               uint16(*port),
		Listen:             *listen,
		DataDir:            *dataDir,
		TickIntervalMS:     *tickMS,
		SnapshotIntervalMS: *snapMS,
	}

	peers, err := parsePeers(*peersFlag)
	if err != nil {
		return Config{}, err
	}
	cfg.Peers = peers

	return cfg, nil
}

func parsePeers(raw string) ([]Peer, error) {
	if raw == "" {
		return nil, nil
	}

	var peers []Peer
	for _, entry := range strings.Split(raw, ",") {
		addrPart, baseURL, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("config: invalid peer entry %q: expected id:port=baseURL", entry)
		}
		idStr, portStr, ok := strings.Cut(addrPart, ":")
		if !ok {
			return nil, fmt.Errorf("config: invalid peer address %q: expected id:port", addrPart)
		}
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("config: invalid peer id %q: %w", idStr, err)
		}
		port, err := strconv.ParseUint(portStr, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("config: invalid peer port %q: %w", portStr, err)
		}
		peers = append(peers, Peer{
			Addr:    ringcore.NewAddress(uint32(id), uint16(port)),
			BaseURL: baseURL,
		})
	}
	return peers, nil
}
