package ringcore

import (
	"fmt"
	"strconv"
	"strings"
)

// MessageKind is the wire-level discriminator of a frame.
type MessageKind int

const (
	MsgCreate MessageKind = iota
	MsgUpdate
	MsgRead
	MsgDelete
	MsgReply
	MsgReadReply
)

// ReplicaType tags which of the three replica slots a CREATE/UPDATE targets.
type ReplicaType int

const (
	ReplicaNone ReplicaType = iota
	ReplicaPrimary
	ReplicaSecondary
	ReplicaTertiary
)

const frameDelim = "::"

// Message is a tagged variant over the six frame shapes.
// Only the fields relevant to Kind are populated by the sender; the codec
// round-trips exactly what the wire format carries, nothing more.
type Message struct {
	TrID    int
	From    Address
	Kind    MessageKind
	Key     string
	Value   string
	Replica ReplicaType
	Status  int // REPLY only: 0 or 1
}

// Encode renders m as the `::`-delimited ASCII frame.
// Keys and values must not contain "::".
func (m Message) Encode() string {
	switch m.Kind {
	case MsgCreate, MsgUpdate:
		return fmt.Sprintf("%d%s%s%s%d%s%s%s%s%s%d",
			m.TrID, frameDelim, m.From, frameDelim, int(m.Kind), frameDelim,
			m.Key, frameDelim, m.Value, frameDelim, int(m.Replica))
	case MsgRead, MsgDelete:
		return fmt.Sprintf("%d%s%s%s%d%s%s",
			m.TrID, frameDelim, m.From, frameDelim, int(m.Kind), frameDelim, m.Key)
	case MsgReply:
		return fmt.Sprintf("%d%s%s%s%d%s%d",
			m.TrID, frameDelim, m.From, frameDelim, int(m.Kind), frameDelim, m.Status)
	case MsgReadReply:
		return fmt.Sprintf("%d%s%s%s%d%s%s",
			m.TrID, frameDelim, m.From, frameDelim, int(m.Kind), frameDelim, m.Value)
	default:
		return ""
	}
}

// DecodeMessage parses a frame produced by Encode. Core.Tick drops a frame
// that fails to decode silently; the returned error is never surfaced
// across the tick boundary.
func DecodeMessage(frame string) (Message, error) {
	parts := strings.Split(frame, frameDelim)
	if len(parts) < 4 {
		return Message{}, fmt.Errorf("ringcore: malformed frame %q", frame)
	}

	trID, err := strconv.Atoi(parts[0])
	if err != nil {
		return Message{}, fmt.Errorf("ringcore: malformed transaction id in %q: %w", frame, err)
	}
	from, err := ParseAddress(parts[1])
	if err != nil {
		return Message{}, err
	}
	kindNum, err := strconv.Atoi(parts[2])
	if err != nil {
		return Message{}, fmt.Errorf("ringcore: malformed message kind in %q: %w", frame, err)
	}
	kind := MessageKind(kindNum)

	m := Message{TrID: trID, From: from, Kind: kind}

	switch kind {
	case MsgCreate, MsgUpdate:
		if len(parts) < 6 {
			return Message{}, fmt.Errorf("ringcore: short CREATE/UPDATE frame %q", frame)
		}
		replica, err := strconv.Atoi(parts[5])
		if err != nil {
			return Message{}, fmt.Errorf("ringcore: malformed replica type in %q: %w", frame, err)
		}
		m.Key = parts[3]
		m.Value = parts[4]
		m.Replica = ReplicaType(replica)
	case MsgRead, MsgDelete:
		m.Key = parts[3]
	case MsgReply:
		status, err := strconv.Atoi(parts[3])
		if err != nil {
			return Message{}, fmt.Errorf("ringcore: malformed status in %q: %w", frame, err)
		}
		m.Status = status
	case MsgReadReply:
		m.Value = parts[3]
	default:
		return Message{}, fmt.Errorf("ringcore: unknown message kind %d in %q", kindNum, frame)
	}

	return m, nil
}
