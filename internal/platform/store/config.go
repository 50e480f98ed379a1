package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	// AppName tags postgres sessions and clickhouse client info
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// boot ping knobs, zero means 6 attempts and 5s per ping
	ConnectRetries int
	PingTimeout    time.Duration
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled bool
	URL     string

	// Role tags the client in system.query_log, eg "api" or "cli"
	Role string
}
