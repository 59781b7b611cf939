package sntp

import (
	"encoding/binary"
	"fmt"
	"time"
)

const (
	packetSize = 48

	// Seconds between the NTP epoch (1900-01-01) and the Unix epoch (1970-01-01).
	ntpEpochOffset = 2208988800

	versionNumber = 4
	modeClient    = 3
	modeServer    = 4

	leapAlarm = 3
)

// packet is a decoded SNTP reply. Only the fields the engine acts on are kept.
type packet struct {
	leap      uint8
	version   uint8
	mode      uint8
	stratum   uint8
	originate uint64
	receive   uint64
	transmit  uint64
}

// marshalRequest builds a mode-3 client packet carrying t1 as the transmit
// timestamp. The server echoes it back in the originate field, which lets the
// client match replies to its own request.
func marshalRequest(t1 time.Time) []byte {
	buf := make([]byte, packetSize)
	buf[0] = versionNumber<<3 | modeClient
	binary.BigEndian.PutUint64(buf[40:], toNTPTime(t1))
	return buf
}

// parseReply decodes and validates a server reply. Any structural defect is a
// protocol error; a leap-indicator alarm or stratum-0 kiss-of-death packet
// means the server itself is not synchronized.
func parseReply(buf []byte) (packet, error) {
	if len(buf) < packetSize {
		return packet{}, fmt.Errorf("%w: reply too short (%d bytes)", ErrProtocol, len(buf))
	}

	p := packet{
		leap:      buf[0] >> 6,
		version:   buf[0] >> 3 & 0x07,
		mode:      buf[0] & 0x07,
		stratum:   buf[1],
		originate: binary.BigEndian.Uint64(buf[24:]),
		receive:   binary.BigEndian.Uint64(buf[32:]),
		transmit:  binary.BigEndian.Uint64(buf[40:]),
	}

	if p.mode != modeServer {
		return packet{}, fmt.Errorf("%w: unexpected mode %d", ErrProtocol, p.mode)
	}
	if p.leap == leapAlarm {
		return packet{}, fmt.Errorf("%w: leap indicator alarm", ErrUnsynchronized)
	}
	if p.stratum == 0 {
		return packet{}, fmt.Errorf("%w: kiss-of-death (stratum 0)", ErrUnsynchronized)
	}
	if p.transmit == 0 {
		return packet{}, fmt.Errorf("%w: zero transmit timestamp", ErrProtocol)
	}
	return p, nil
}

// toNTPTime converts a wall-clock time to the 64-bit NTP fixed-point format:
// seconds since 1900 in the high word, binary fraction in the low word.
func toNTPTime(t time.Time) uint64 {
	secs := uint64(t.Unix()) + ntpEpochOffset
	frac := uint64(t.Nanosecond()) << 32 / 1e9
	return secs<<32 | frac
}

func fromNTPTime(v uint64) time.Time {
	secs := int64(v>>32) - ntpEpochOffset
	nanos := (v & 0xffffffff) * 1e9 >> 32
	return time.Unix(secs, int64(nanos))
}
