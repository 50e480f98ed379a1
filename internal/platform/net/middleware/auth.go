package middleware

import (
	"net/http"

	pnet "marketbrowse/internal/platform/net"
)

// AuthPort resolves the caller wallet from a request
type AuthPort interface {
	Parse(r *http.Request) (wallet string, err error)
}

// Auth answers with the port's error when it cannot resolve a wallet
// and otherwise stores the wallet on the context, a nil port lets everything through
func Auth(p AuthPort) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if p == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wallet, err := p.Parse(r)
			if err != nil {
				pnet.WriteError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithWallet(r.Context(), wallet)))
		})
	}
}
