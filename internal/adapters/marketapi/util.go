package marketapi

import (
	"io"
	"net/http"
	"strconv"
	"time"

	perr "marketbrowse/internal/platform/errors"
)

// retryAfter reads Retry-After as delta seconds or an HTTP date
func retryAfter(h http.Header, now time.Time) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	if sec, err := strconv.Atoi(v); err == nil {
		if sec <= 0 {
			return 0
		}
		return time.Duration(sec) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}

// statusError maps a final non retryable status to a coded error
func statusError(status int, body string) error {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return perr.Newf(perr.ErrorCodeInvalidArgument, "marketapi rejected the query: %s", body)
	case http.StatusNotFound:
		return perr.Newf(perr.ErrorCodeNotFound, "marketapi listing not found")
	case http.StatusUnauthorized:
		return perr.Newf(perr.ErrorCodeUnauthorized, "marketapi unauthorized")
	case http.StatusForbidden:
		return perr.Newf(perr.ErrorCodeForbidden, "marketapi forbidden")
	}
	return perr.Newf(perr.ErrorCodeUnknown, "marketapi unexpected status %d body %s", status, body)
}
