// Package testkit provides testing helpers
package testkit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// MustPanic asserts that fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
}

// MustContain asserts that out contains needle, dumping out to a temp file when it does not
func MustContain(t *testing.T, out, needle string) {
	t.Helper()
	if !strings.Contains(out, needle) {
		t.Fatalf("expected output to contain %q\n\nfull output written to %s", needle, dump(t, out))
	}
}

// MustNotContain is the inverse of MustContain
func MustNotContain(t *testing.T, out, needle string) {
	t.Helper()
	if strings.Contains(out, needle) {
		t.Fatalf("expected output to omit %q\n\nfull output written to %s", needle, dump(t, out))
	}
}

func dump(t *testing.T, out string) string {
	path := filepath.Join(t.TempDir(), "output.txt")
	_ = os.WriteFile(path, []byte(out), 0o600)
	return path
}
