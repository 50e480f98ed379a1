package testkit

import (
	"sync"
	"testing"
	"time"
)

var pageSize = 50

func TestSwap_Restores(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Swap(t, &pageSize, 20)
		if pageSize != 20 {
			t.Fatalf("pageSize = %d, want 20", pageSize)
		}
	})
	if pageSize != 50 {
		t.Fatalf("pageSize not restored, got %d", pageSize)
	}
}

func TestSerial_NoInterleaving(t *testing.T) {
	var (
		mu  sync.Mutex
		seq []string
	)
	record := func(s string) {
		mu.Lock()
		seq = append(seq, s)
		mu.Unlock()
	}

	t.Run("group", func(t *testing.T) {
		for _, name := range []string{"a", "b"} {
			t.Run(name, func(t *testing.T) {
				t.Parallel()
				Serial(t)
				record(name + "-start")
				time.Sleep(20 * time.Millisecond)
				record(name + "-end")
			})
		}
	})

	if len(seq) != 4 {
		t.Fatalf("seq = %v", seq)
	}
	for i := 0; i < 4; i += 2 {
		if seq[i][:1] != seq[i+1][:1] {
			t.Fatalf("interleaved run: %v", seq)
		}
	}
}
