// Package probe queries the operating system and the network for single host
// facts and wraps each answer in its result value. Probes that may block run
// through Run so the caller's control flow never stalls on OS or socket I/O.
package probe

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable means an OS query failed or returned no usable data.
	ErrUnavailable = errors.New("probe: unavailable")

	// ErrNetwork means a socket-level failure while probing the network.
	ErrNetwork = errors.New("probe: network unreachable")
)

// Run executes fn on a dedicated goroutine and joins the outcome over a
// channel. When the context expires first, the probe's eventual result is
// dropped and the context error is returned instead of blocking.
func Run[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type outcome struct {
		v   T
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		v, err := fn()
		ch <- outcome{v: v, err: err}
	}()
	select {
	case o := <-ch:
		return o.v, o.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
