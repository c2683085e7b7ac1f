// Command resolve sends a single DNS query to a well-known upstream
// resolver and prints the decoded response, the way a dig-lite debugging
// client would.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/blazskufca/goresolve/internal/config"
	"github.com/blazskufca/goresolve/internal/dnstype"
	"github.com/blazskufca/goresolve/internal/header"
	"github.com/blazskufca/goresolve/internal/message"
	"github.com/blazskufca/goresolve/internal/question"
	"github.com/blazskufca/goresolve/internal/transport"
)

func main() {
	queryName := flag.String("query", "google.com", "domain name to query")
	typeName := flag.String("type", "A", "record type to query: A, NS, CNAME, MX, or AAAA")
	flag.Parse()

	qtype, err := dnstype.ParseType(*typeName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "resolve:", err)
		os.Exit(1)
	}

	if err := run(*queryName, qtype); err != nil {
		fmt.Fprintln(os.Stderr, "resolve:", err)
		os.Exit(1)
	}
}

func run(queryName string, qtype dnstype.Type) error {
	query := &message.Message{
		Header:    header.Header{RD: true},
		Questions: []question.Question{{Name: queryName, Type: qtype}},
	}
	if err := query.Header.SetRandomID(); err != nil {
		return fmt.Errorf("generate transaction id: %w", err)
	}

	buf, err := query.Encode()
	if err != nil {
		return fmt.Errorf("encode query: %w", err)
	}

	conn, err := bindClientSocket(config.DefaultClientBindAddr)
	if err != nil {
		return err
	}
	defer conn.Close()

	raw, err := exchangeOverConn(conn, config.DefaultUpstreamResolver, buf, 5*time.Second)
	if err != nil {
		return fmt.Errorf("query %s: %w", config.DefaultUpstreamResolver, err)
	}

	resp, err := message.Decode(raw)
	if err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	printResponse(resp)
	return nil
}

// bindClientSocket binds the client's reply socket to a fixed local
// address rather than an ephemeral port, matching the original tool's
// fixed-port client behavior.
func bindClientSocket(addr string) (*net.UDPConn, error) {
	return transport.Listen(addr)
}

// exchangeOverConn runs the same single write/read exchange as
// transport.Exchange but over a socket the caller already bound, since the
// client needs its reply socket pinned to a specific local address rather
// than letting the OS pick an ephemeral one.
func exchangeOverConn(conn *net.UDPConn, addr string, query []byte, timeout time.Duration) ([]byte, error) {
	remote, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", addr, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if _, err := conn.WriteToUDP(query, remote); err != nil {
		return nil, fmt.Errorf("write to %s: %w", addr, err)
	}

	buf := make([]byte, 512)
	n, _, err := conn.ReadFromUDP(buf)
	if err != nil {
		return nil, fmt.Errorf("read from %s: %w", addr, err)
	}
	return buf[:n], nil
}

func printResponse(m *message.Message) {
	h := m.Header
	fmt.Printf("id=%d qr=%v opcode=%d rcode=%s aa=%v tc=%v rd=%v ra=%v\n", h.ID, h.QR, h.Opcode, h.RCODE, h.AA, h.TC, h.RD, h.RA)
	fmt.Printf("questions=%d answers=%d authority=%d additional=%d\n", h.QDCOUNT, h.ANCOUNT, h.NSCOUNT, h.ARCOUNT)

	for _, q := range m.Questions {
		fmt.Printf(";; QUESTION: %s %s\n", q.Name, q.Type)
	}
	for _, r := range m.Answers {
		fmt.Printf(";; ANSWER: %s\n", r)
	}
	for _, r := range m.Authority {
		fmt.Printf(";; AUTHORITY: %s\n", r)
	}
	for _, r := range m.Additional {
		fmt.Printf(";; ADDITIONAL: %s\n", r)
	}
}
