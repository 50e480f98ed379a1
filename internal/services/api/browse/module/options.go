package module

import (
	"time"

	"marketbrowse/internal/core/paging"
	"marketbrowse/internal/platform/config"
)

// Options controls browse behavior and market API client settings
type Options struct {
	// market API client
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	RetryBase  time.Duration

	CatalogFile string   // empty uses the embedded catalog
	Disabled    []string // partner vendors switched off
	PageSize    int

	FetchTimeout time.Duration // bound on one detached fetch
	Concurrency  int

	TxRetries   int           // attempts for a session tx failing on a transient postgres error
	LockTimeout time.Duration // wait bound on the session row lock

	AutoMigrate bool // create the session table and event table on boot
	Events      bool // record browse events to ClickHouse when it is enabled
	WalletAuth  bool // accept a bearer wallet for /account
}

// FromConfig reads BROWSE_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	bc := cfg.Prefix("BROWSE_")
	return Options{
		BaseURL:      bc.MayString("MARKET_API_URL", ""),
		UserAgent:    bc.MayString("MARKET_API_UA", "marketbrowse"),
		Timeout:      bc.MayDuration("MARKET_API_TIMEOUT", 10*time.Second),
		MaxRetries:   bc.MayInt("FETCH_RETRIES", 3),
		RetryBase:    bc.MayDuration("FETCH_RETRY_BASE", 250*time.Millisecond),
		CatalogFile:  bc.MayString("CATALOG_FILE", ""),
		Disabled:     bc.MayCSV("DISABLED_VENDORS", nil),
		PageSize:     bc.MayInt("PAGE_SIZE", paging.PageSize),
		FetchTimeout: bc.MayDuration("FETCH_TIMEOUT", 15*time.Second),
		Concurrency:  bc.MayInt("FETCH_CONCURRENCY", 8),
		TxRetries:    bc.MayInt("TX_RETRIES", 3),
		LockTimeout:  bc.MayDuration("LOCK_TIMEOUT", 2*time.Second),
		AutoMigrate:  bc.MayBool("AUTO_MIGRATE", true),
		Events:       bc.MayBool("EVENTS", true),
		WalletAuth:   bc.MayBool("WALLET_AUTH", true),
	}
}
