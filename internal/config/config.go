// Package config gathers the tunables for the resolver, server, and
// client binaries, with defaults matching the reference implementation
// this project follows and a log level read from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap/zapcore"
)

// DefaultRootServer is a.root-servers.net, the starting point for every
// recursive resolution this resolver performs.
const DefaultRootServer = "198.41.0.4:53"

// DefaultListenAddr is where the server listens for client queries.
const DefaultListenAddr = "127.0.0.1:2053"

// DefaultUpstreamResolver is used only by the client binary, which speaks
// to a single well-known resolver rather than recursing itself.
const DefaultUpstreamResolver = "8.8.8.8:53"

// DefaultClientBindAddr is the fixed local address the client binds its
// reply socket to.
const DefaultClientBindAddr = "0.0.0.0:2053"

// LogLevelEnvVar is the environment variable read to set the logger's
// level at process start.
const LogLevelEnvVar = "GODNS_LOG_LEVEL"

// Config holds the resolver's runtime tunables.
type Config struct {
	ListenAddr string
	RootServer string
	Timeout    time.Duration
	MaxHops    int
	LogLevel   zapcore.Level
}

// Default returns the configuration used when no flags override it. Its
// LogLevel is read from LogLevelEnvVar, falling back to info when the
// variable is unset or not a recognised level.
func Default() Config {
	return Config{
		ListenAddr: DefaultListenAddr,
		RootServer: DefaultRootServer,
		Timeout:    5 * time.Second,
		MaxHops:    16,
		LogLevel:   logLevelFromEnv(),
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("config: listen address must not be empty")
	}
	if c.RootServer == "" {
		return fmt.Errorf("config: root server must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: timeout must be positive")
	}
	if c.MaxHops <= 0 {
		return fmt.Errorf("config: max hops must be positive")
	}
	return nil
}

func logLevelFromEnv() zapcore.Level {
	level, err := zapcore.ParseLevel(os.Getenv(LogLevelEnvVar))
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}
