package resolver_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blazskufca/goresolve/internal/dnstype"
	"github.com/blazskufca/goresolve/internal/header"
	"github.com/blazskufca/goresolve/internal/message"
	"github.com/blazskufca/goresolve/internal/question"
	"github.com/blazskufca/goresolve/internal/record"
	"github.com/blazskufca/goresolve/internal/resolver"
)

// fakeServer answers every incoming query with whatever respond returns for
// that query's question, echoing back the query's ID and question section.
type fakeServer struct {
	conn    *net.UDPConn
	respond func(q question.Question) *message.Message
}

func startFakeServer(t *testing.T, respond func(q question.Question) *message.Message) string {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	go func() {
		buf := make([]byte, 512)
		for {
			n, addr, err := conn.ReadFromUDP(buf)
			if err != nil {
				return
			}
			req, err := message.Decode(buf[:n])
			if err != nil {
				continue
			}
			q, ok := req.FirstQuestion()
			if !ok {
				continue
			}
			resp := respond(q)
			resp.Header.ID = req.Header.ID
			resp.Questions = []question.Question{q}
			out, err := resp.Encode()
			if err != nil {
				continue
			}
			_, _ = conn.WriteToUDP(out, addr)
		}
	}()

	return conn.LocalAddr().String()
}

func TestResolveDirectAnswer(t *testing.T) {
	addr := startFakeServer(t, func(q question.Question) *message.Message {
		return &message.Message{
			Header:  header.Header{QR: true, RCODE: header.NoError},
			Answers: []record.Record{record.A{Name: q.Name, TTL: 300, Address: net.IPv4(93, 184, 216, 34)}},
		}
	})

	r := resolver.New(addr, time.Second, 4, nil)
	resp, err := r.Resolve(context.Background(), question.Question{Name: "example.com", Type: dnstype.A})
	require.NoError(t, err)
	require.True(t, resp.HasAnswers())
	a, ok := resp.Answers[0].(record.A)
	require.True(t, ok)
	assert.Equal(t, "93.184.216.34", a.Address.String())
	assert.Equal(t, header.NoError, resp.Header.RCODE)
}

func TestResolveNXDOMAIN(t *testing.T) {
	addr := startFakeServer(t, func(q question.Question) *message.Message {
		return &message.Message{Header: header.Header{QR: true, RCODE: header.NameError}}
	})

	r := resolver.New(addr, time.Second, 4, nil)
	resp, err := r.Resolve(context.Background(), question.Question{Name: "nonexistent.invalid", Type: dnstype.A})
	require.NoError(t, err)
	assert.Equal(t, header.NameError, resp.Header.RCODE)
	assert.False(t, resp.HasAnswers())
}

func TestResolveFollowsGlueDelegation(t *testing.T) {
	var leafAddr string

	rootAddr := startFakeServer(t, func(q question.Question) *message.Message {
		host, portStr, _ := net.SplitHostPort(leafAddr)
		ip := net.ParseIP(host)
		_ = portStr
		return &message.Message{
			Header:     header.Header{QR: true, RCODE: header.NoError},
			Authority:  []record.Record{record.NS{Name: "com", TTL: 300, NameServer: "ns.com"}},
			Additional: []record.Record{record.A{Name: "ns.com", TTL: 300, Address: ip}},
		}
	})

	leafAddr = startFakeServer(t, func(q question.Question) *message.Message {
		return &message.Message{
			Header:  header.Header{QR: true, RCODE: header.NoError},
			Answers: []record.Record{record.A{Name: q.Name, TTL: 300, Address: net.IPv4(1, 2, 3, 4)}},
		}
	})

	r := resolver.New(rootAddr, time.Second, 4, nil)
	resp, err := r.Resolve(context.Background(), question.Question{Name: "example.com", Type: dnstype.A})
	require.NoError(t, err)
	require.True(t, resp.HasAnswers())
	a := resp.Answers[0].(record.A)
	assert.Equal(t, "1.2.3.4", a.Address.String())
}

func TestResolveFollowsGluelessDelegation(t *testing.T) {
	var leafAddr string

	rootAddr := startFakeServer(t, func(q question.Question) *message.Message {
		if q.Name == "ns.com" {
			host, _, _ := net.SplitHostPort(leafAddr)
			return &message.Message{
				Header:  header.Header{QR: true, RCODE: header.NoError},
				Answers: []record.Record{record.A{Name: "ns.com", TTL: 300, Address: net.ParseIP(host)}},
			}
		}
		// Delegation with no glue: the caller must resolve ns.com's
		// address itself via a nested A lookup.
		return &message.Message{
			Header:    header.Header{QR: true, RCODE: header.NoError},
			Authority: []record.Record{record.NS{Name: "com", TTL: 300, NameServer: "ns.com"}},
		}
	})

	leafAddr = startFakeServer(t, func(q question.Question) *message.Message {
		return &message.Message{
			Header:  header.Header{QR: true, RCODE: header.NoError},
			Answers: []record.Record{record.A{Name: q.Name, TTL: 300, Address: net.IPv4(9, 9, 9, 9)}},
		}
	})

	r := resolver.New(rootAddr, time.Second, 4, nil)
	resp, err := r.Resolve(context.Background(), question.Question{Name: "example.com", Type: dnstype.A})
	require.NoError(t, err)
	require.True(t, resp.HasAnswers())
	a := resp.Answers[0].(record.A)
	assert.Equal(t, "9.9.9.9", a.Address.String())
}

func TestResolveGivesUpAtMaxHops(t *testing.T) {
	var addr string
	addr = startFakeServer(t, func(q question.Question) *message.Message {
		host, _, _ := net.SplitHostPort(addr)
		ip := net.ParseIP(host)
		return &message.Message{
			Header:     header.Header{QR: true, RCODE: header.NoError},
			Authority:  []record.Record{record.NS{Name: "com", TTL: 300, NameServer: "ns.com"}},
			Additional: []record.Record{record.A{Name: "ns.com", TTL: 300, Address: ip}},
		}
	})

	r := resolver.New(addr, time.Second, 2, nil)
	resp, err := r.Resolve(context.Background(), question.Question{Name: "example.com", Type: dnstype.A})
	require.NoError(t, err)
	assert.Equal(t, header.ServerFailure, resp.Header.RCODE)
}

func TestResolveUnreachableRootYieldsSERVFAIL(t *testing.T) {
	r := resolver.New("127.0.0.1:1", 50*time.Millisecond, 2, nil)
	resp, err := r.Resolve(context.Background(), question.Question{Name: "example.com", Type: dnstype.A})
	require.NoError(t, err)
	assert.Equal(t, header.ServerFailure, resp.Header.RCODE)
}
