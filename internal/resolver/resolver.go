// Package resolver implements recursive DNS resolution: starting from a
// root nameserver, it walks the delegation chain until it finds an answer,
// an authoritative NXDOMAIN, or gives up.
package resolver

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/blazskufca/goresolve/internal/dnserrors"
	"github.com/blazskufca/goresolve/internal/dnstype"
	"github.com/blazskufca/goresolve/internal/header"
	"github.com/blazskufca/goresolve/internal/message"
	"github.com/blazskufca/goresolve/internal/question"
	"github.com/blazskufca/goresolve/internal/transport"
)

// Resolver performs recursive lookups starting from a root nameserver.
type Resolver struct {
	Root    string
	Timeout time.Duration
	MaxHops int
	Logger  *zap.Logger
}

// New builds a Resolver. A nil logger is replaced with zap.NewNop().
func New(root string, timeout time.Duration, maxHops int, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{Root: root, Timeout: timeout, MaxHops: maxHops, Logger: logger}
}

// Resolve recursively resolves a single question, returning a complete
// answer message. It never follows CNAME chains specially, never caches,
// and never falls back to a non-recursive forwarder: on failure to reach
// an answer within MaxHops delegations it returns a SERVFAIL message.
func (r *Resolver) Resolve(ctx context.Context, q question.Question) (*message.Message, error) {
	server := r.Root
	for hop := 0; hop < r.MaxHops; hop++ {
		resp, err := r.query(ctx, server, q)
		if err != nil {
			r.Logger.Debug("nameserver query failed", zap.String("server", server), zap.String("name", q.Name), zap.Error(err))
			return servfail(q), nil
		}

		if resp.HasAnswers() {
			r.Logger.Info("resolved", zap.String("name", q.Name), zap.String("type", q.Type.String()), zap.Int("answers", len(resp.Answers)))
			return answerFrom(q, resp), nil
		}

		if resp.Rescode() == header.NameError {
			r.Logger.Info("nxdomain", zap.String("name", q.Name))
			return nxdomain(q), nil
		}

		if ip, ok := resp.GetResolvedNS(q.Name); ok {
			r.Logger.Debug("delegation with glue", zap.String("name", q.Name), zap.String("ns", ip.String()))
			server = net.JoinHostPort(ip.String(), "53")
			continue
		}

		if nsHost, ok := resp.GetUnresolvedNS(q.Name); ok {
			r.Logger.Debug("delegation without glue, resolving nameserver", zap.String("name", q.Name), zap.String("ns", nsHost))
			nsQuestion := question.Question{Name: nsHost, Type: dnstype.A}
			nsResp, err := r.Resolve(ctx, nsQuestion)
			if err != nil || !nsResp.HasAnswers() {
				r.Logger.Debug("failed to resolve nameserver address", zap.String("ns", nsHost))
				return servfail(q), nil
			}
			ip, ok := nsResp.GetRandomA()
			if !ok {
				return servfail(q), nil
			}
			server = net.JoinHostPort(ip.String(), "53")
			continue
		}

		// No answer, no NXDOMAIN, no further delegation: nothing more to try.
		r.Logger.Debug("dead end with no delegation", zap.String("name", q.Name), zap.String("server", server))
		return servfail(q), nil
	}

	r.Logger.Warn("exceeded max delegation hops", zap.String("name", q.Name), zap.Int("max_hops", r.MaxHops))
	return servfail(q), nil
}

func (r *Resolver) query(ctx context.Context, server string, q question.Question) (*message.Message, error) {
	queryMsg := &message.Message{
		Header:    header.Header{RD: false},
		Questions: []question.Question{q},
	}
	if err := queryMsg.Header.SetRandomID(); err != nil {
		return nil, &dnserrors.InternalError{Op: "resolver.query", Err: err}
	}

	buf, err := queryMsg.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	raw, err := transport.Exchange(ctx, server, buf, r.Timeout)
	if err != nil {
		return nil, err
	}

	resp, err := message.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode response from %s: %w", server, err)
	}

	return resp, nil
}

func answerFrom(q question.Question, resp *message.Message) *message.Message {
	out := &message.Message{
		Header:     header.Header{QR: true, RD: true, RA: true, RCODE: header.NoError},
		Questions:  []question.Question{q},
		Answers:    resp.Answers,
		Authority:  resp.Authority,
		Additional: resp.Additional,
	}
	return out
}

func nxdomain(q question.Question) *message.Message {
	return &message.Message{
		Header:    header.Header{QR: true, RD: true, RA: true, RCODE: header.NameError},
		Questions: []question.Question{q},
	}
}

func servfail(q question.Question) *message.Message {
	return &message.Message{
		Header:    header.Header{QR: true, RD: true, RA: true, RCODE: header.ServerFailure},
		Questions: []question.Question{q},
	}
}
