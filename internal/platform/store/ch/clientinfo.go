package ch

import (
	"os"
	"runtime"
	"strings"

	"marketbrowse/internal/core/version"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// clientInfo tags queries in system.query_log with the process, role and build
// role examples: "api", "cli"
func clientInfo(role, app string) clickhouse.ClientInfo {
	host, _ := os.Hostname()
	if app == "" {
		app = "marketbrowse"
	}
	return clickhouse.ClientInfo{Products: []struct{ Name, Version string }{
		{Name: app, Version: version.Version()},
		{Name: "role", Version: orUnknown(role)},
		{Name: "go", Version: runtime.Version()},
		{Name: "commit", Version: version.Commit()},
		{Name: "host", Version: orUnknown(host)},
	}}
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}
