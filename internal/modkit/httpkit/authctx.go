package httpkit

import (
	"net/http"

	pnet "marketbrowse/internal/platform/net"
)

// Wallet returns the wallet address the auth middleware resolved, empty for anonymous calls
func Wallet(r *http.Request) string { return pnet.Wallet(r.Context()) }
