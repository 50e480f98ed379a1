// Package modkit provides module wiring and core deps
package modkit

import (
	"marketbrowse/internal/modkit/module"
	"marketbrowse/internal/modkit/repokit"
	"marketbrowse/internal/platform/config"
	"marketbrowse/internal/platform/logger"
	"marketbrowse/internal/platform/store"
)

// Module is the common surface for API modules
type Module = module.Module

// Deps holds core dependencies passed to modules
// PG and CH are nil when that backend is disabled
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}
