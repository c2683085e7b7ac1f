// Package transport sends a single DNS query over UDP and waits for the
// first reply datagram from that nameserver (its transaction ID is not
// checked), the way a recursive resolver talks to one nameserver at a
// time: one ephemeral socket per query, one write, one read, then close.
package transport

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/blazskufca/goresolve/internal/dnserrors"
)

// Exchange sends query to addr over a fresh UDP socket and returns the raw
// reply bytes. It never retries and never reuses a socket across calls.
func Exchange(ctx context.Context, addr string, query []byte, timeout time.Duration) ([]byte, error) {
	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "udp", addr)
	if err != nil {
		return nil, &dnserrors.NetworkError{Op: "transport.Exchange: dial", Addr: addr, Err: err}
	}
	defer conn.Close()

	deadline := time.Now().Add(timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, &dnserrors.NetworkError{Op: "transport.Exchange: set deadline", Addr: addr, Err: err}
	}

	if _, err := conn.Write(query); err != nil {
		return nil, &dnserrors.NetworkError{Op: "transport.Exchange: write", Addr: addr, Err: err}
	}

	const maxDatagramSize = 512
	buf := make([]byte, maxDatagramSize)
	n, err := conn.Read(buf)
	if err != nil {
		return nil, &dnserrors.NetworkError{Op: "transport.Exchange: read", Addr: addr, Err: err}
	}

	out := make([]byte, n)
	copy(out, buf[:n])
	return out, nil
}

// Listen binds a UDP socket on addr for the server to receive queries on.
func Listen(addr string) (*net.UDPConn, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("transport.Listen: resolve %s: %w", addr, err)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, fmt.Errorf("transport.Listen: bind %s: %w", addr, err)
	}
	return conn, nil
}
