// Package sntp measures the offset between the local clock and a reference
// NTP server using a single request/reply round trip.
package sntp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog/log"
)

// Typed failure conditions. Callers discriminate with errors.Is.
var (
	// ErrNetwork covers socket-level failures before or during the exchange.
	ErrNetwork = errors.New("sntp: network unreachable")

	// ErrTimeout means the server did not reply within the configured bound.
	ErrTimeout = errors.New("sntp: timed out waiting for reply")

	// ErrProtocol means the reply was malformed or did not match the request.
	ErrProtocol = errors.New("sntp: protocol error")

	// ErrUnsynchronized means the server answered but disclaims a usable clock.
	ErrUnsynchronized = errors.New("sntp: server not synchronized")
)

// Sample holds the four timestamps of one completed round trip: local send
// (T1), server receive (T2), server transmit (T3), local receive (T4).
type Sample struct {
	T1, T2, T3, T4 time.Time
}

// Offset is the signed duration the local clock trails the server:
// ((T2-T1) + (T3-T4)) / 2. Positive means the server is ahead.
func (s Sample) Offset() time.Duration {
	return (s.T2.Sub(s.T1) + s.T3.Sub(s.T4)) / 2
}

// RoundTrip is the network delay of the exchange with the server's own
// processing time subtracted out: (T4-T1) - (T3-T2).
func (s Sample) RoundTrip() time.Duration {
	return s.T4.Sub(s.T1) - s.T3.Sub(s.T2)
}

// Precision is the confidence bound on Offset. The true offset lies within
// half the round-trip delay of the reported value.
func (s Sample) Precision() time.Duration {
	rt := s.RoundTrip()
	if rt < 0 {
		rt = -rt
	}
	return rt / 2
}

// Time is the best local estimate of the server's current time.
func (s Sample) Time() time.Time {
	return s.T4.Add(s.Offset())
}

// Client performs SNTP exchanges against a fixed server. The zero value is
// not usable; construct with NewClient.
type Client struct {
	server  string
	timeout time.Duration
}

// NewClient returns a Client for the given "host:port" server address.
func NewClient(server string, timeout time.Duration) *Client {
	return &Client{server: server, timeout: timeout}
}

// Exchange performs exactly one round trip and returns the resulting Sample.
// It never retries: a lost packet surfaces as ErrTimeout and the caller
// decides whether to try again. The context deadline, when earlier than the
// client timeout, bounds the exchange.
func (c *Client) Exchange(ctx context.Context) (Sample, error) {
	d := net.Dialer{Timeout: c.timeout}
	conn, err := d.DialContext(ctx, "udp", c.server)
	if err != nil {
		return Sample{}, fmt.Errorf("%w: dial %s: %v", ErrNetwork, c.server, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(c.timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return Sample{}, fmt.Errorf("%w: set deadline: %v", ErrNetwork, err)
	}

	t1 := time.Now()
	req := marshalRequest(t1)
	if _, err := conn.Write(req); err != nil {
		return Sample{}, fmt.Errorf("%w: send request: %v", ErrNetwork, err)
	}

	buf := make([]byte, 128)
	n, err := conn.Read(buf)
	t4 := time.Now()
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return Sample{}, fmt.Errorf("%w: %s after %s", ErrTimeout, c.server, c.timeout)
		}
		return Sample{}, fmt.Errorf("%w: read reply: %v", ErrNetwork, err)
	}

	pkt, err := parseReply(buf[:n])
	if err != nil {
		return Sample{}, err
	}
	if pkt.originate != toNTPTime(t1) {
		return Sample{}, fmt.Errorf("%w: originate timestamp does not match request", ErrProtocol)
	}

	s := Sample{
		T1: t1,
		T2: fromNTPTime(pkt.receive),
		T3: fromNTPTime(pkt.transmit),
		T4: t4,
	}
	log.Debug().
		Str("server", c.server).
		Dur("offset", s.Offset()).
		Dur("round_trip", s.RoundTrip()).
		Dur("precision", s.Precision()).
		Int("stratum", int(pkt.stratum)).
		Msg("sntp exchange complete")
	return s, nil
}
