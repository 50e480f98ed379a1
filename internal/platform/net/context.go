// Package net provides request scoped values shared by the http transport
package net

import (
	"context"

	"marketbrowse/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyWallet ctxKey = "wallet"

// WithRequest stores reqID where chi's GetReqID reads it and tags request logs with it
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	return logger.WithRequest(ctx, reqID)
}

// WithWallet annotates ctx with the authenticated wallet address
func WithWallet(ctx context.Context, addr string) context.Context {
	if addr == "" {
		return ctx
	}
	ctx = context.WithValue(ctx, keyWallet, addr)
	return logger.WithWallet(ctx, addr)
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// Wallet returns the authenticated wallet address, empty for anonymous requests
func Wallet(ctx context.Context) string {
	v, _ := ctx.Value(keyWallet).(string)
	return v
}
