// Command resolverd runs a recursive DNS server: it listens for UDP
// queries and answers them by walking the delegation chain from a root
// nameserver itself, with no upstream forwarder and no cache.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/blazskufca/goresolve/internal/config"
	"github.com/blazskufca/goresolve/internal/resolver"
	"github.com/blazskufca/goresolve/internal/server"
	"github.com/blazskufca/goresolve/internal/transport"
)

func main() {
	cfg := config.Default()

	listen := flag.String("listen", cfg.ListenAddr, "address to listen on for client queries")
	root := flag.String("root", cfg.RootServer, "root nameserver to start recursive resolution from")
	timeout := flag.Duration("timeout", cfg.Timeout, "per-nameserver query timeout")
	maxHops := flag.Int("max-hops", cfg.MaxHops, "maximum number of delegations to follow before giving up")
	flag.Parse()

	cfg.ListenAddr = *listen
	cfg.RootServer = *root
	cfg.Timeout = *timeout
	cfg.MaxHops = *maxHops

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "resolverd:", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "resolverd: building logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	conn, err := transport.Listen(cfg.ListenAddr)
	if err != nil {
		logger.Fatal("failed to bind listen address", zap.String("addr", cfg.ListenAddr), zap.Error(err))
	}

	r := resolver.New(cfg.RootServer, cfg.Timeout, cfg.MaxHops, logger)
	srv := server.New(conn, r, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("resolverd starting",
		zap.String("listen", cfg.ListenAddr),
		zap.String("root", cfg.RootServer),
		zap.Duration("timeout", cfg.Timeout),
		zap.Int("max_hops", cfg.MaxHops),
	)

	if err := srv.Serve(ctx); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
