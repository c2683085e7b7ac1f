// Package server runs a UDP DNS server: decode a query, resolve it
// recursively, encode and send back the reply.
package server

import (
	"context"
	"net"

	"go.uber.org/zap"

	"github.com/blazskufca/goresolve/internal/dnserrors"
	"github.com/blazskufca/goresolve/internal/header"
	"github.com/blazskufca/goresolve/internal/message"
	"github.com/blazskufca/goresolve/internal/resolver"
	"github.com/blazskufca/goresolve/internal/transport"
)

const maxDatagramSize = 512

// Server answers DNS queries received over UDP by resolving them
// recursively. It has no TCP fallback and no cache: every query is
// resolved from scratch, and a truncated response is never produced: a
// response that does not fit in 512 octets is replaced by a SERVFAIL reply.
type Server struct {
	conn     *net.UDPConn
	resolver *resolver.Resolver
	logger   *zap.Logger
}

// New wires conn, a ready-to-use resolver, and a logger into a Server. A
// nil logger is replaced with zap.NewNop().
func New(conn *net.UDPConn, r *resolver.Resolver, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{conn: conn, resolver: r, logger: logger}
}

// Serve reads datagrams from conn until ctx is cancelled, handling each
// one in its own goroutine.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("dns server listening", zap.String("addr", s.conn.LocalAddr().String()))

	go func() {
		<-ctx.Done()
		s.conn.Close()
	}()

	buf := make([]byte, maxDatagramSize)
	for {
		n, addr, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.logger.Error("read from udp failed", zap.Error(err))
			continue
		}

		datagram := make([]byte, n)
		copy(datagram, buf[:n])
		go s.handle(ctx, datagram, addr)
	}
}

func (s *Server) handle(ctx context.Context, data []byte, addr *net.UDPAddr) {
	req, err := message.Decode(data)
	if err != nil {
		s.logger.Warn("failed to decode incoming query", zap.String("from", addr.String()), zap.Error(err))
		s.replyWithError(data, addr, dnserrors.RCODE(err))
		return
	}

	q, ok := req.FirstQuestion()
	if !ok {
		s.logger.Warn("query has no question", zap.String("from", addr.String()))
		s.sendError(req.Header.ID, addr, header.FormatError)
		return
	}

	s.logger.Debug("received query", zap.String("from", addr.String()), zap.String("name", q.Name), zap.String("type", q.Type.String()))

	resp, err := s.resolver.Resolve(ctx, q)
	if err != nil {
		s.logger.Error("resolution failed", zap.String("name", q.Name), zap.Error(err))
		s.sendError(req.Header.ID, addr, header.ServerFailure)
		return
	}

	resp.Header.ID = req.Header.ID

	respBytes, err := resp.Encode()
	if err != nil {
		s.logger.Error("failed to encode response", zap.String("name", q.Name), zap.Error(err))
		s.sendError(req.Header.ID, addr, header.ServerFailure)
		return
	}

	if _, err := s.conn.WriteToUDP(respBytes, addr); err != nil {
		s.logger.Error("failed to send response", zap.String("to", addr.String()), zap.Error(err))
		return
	}

	s.logger.Info("sent response", zap.String("to", addr.String()), zap.String("name", q.Name), zap.Int("answers", len(resp.Answers)))
}

// replyWithError recovers a usable transaction ID from an otherwise
// unparseable datagram when possible, and sends back errorCode. If even
// the 12-byte header cannot be read, the datagram is dropped silently:
// there is no ID to reply with.
func (s *Server) replyWithError(data []byte, addr *net.UDPAddr, errorCode header.ResponseCode) {
	if len(data) < header.Size {
		s.logger.Debug("dropping unparseable datagram shorter than a header", zap.String("from", addr.String()))
		return
	}
	h, err := header.Unmarshal(data)
	if err != nil {
		s.logger.Debug("dropping datagram with unrecoverable header", zap.String("from", addr.String()))
		return
	}
	s.sendError(h.ID, addr, errorCode)
}

func (s *Server) sendError(id uint16, addr *net.UDPAddr, code header.ResponseCode) {
	resp := &message.Message{
		Header: header.Header{ID: id, QR: true, RA: true, RCODE: code},
	}
	respBytes, err := resp.Encode()
	if err != nil {
		s.logger.Error("failed to encode error response", zap.Error(err))
		return
	}
	if _, err := s.conn.WriteToUDP(respBytes, addr); err != nil {
		s.logger.Error("failed to send error response", zap.String("to", addr.String()), zap.Error(err))
	}
}

// ListenAndServe binds addr and serves until ctx is cancelled.
func ListenAndServe(ctx context.Context, addr string, r *resolver.Resolver, logger *zap.Logger) error {
	conn, err := transport.Listen(addr)
	if err != nil {
		return err
	}
	return New(conn, r, logger).Serve(ctx)
}
