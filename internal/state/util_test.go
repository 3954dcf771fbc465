package state

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func mustAdd(t *testing.T, b *Board, pts ...Point) {
	t.Helper()
	for _, p := range pts {
		if err := b.AddPoint(p); err != nil {
			t.Fatalf("AddPoint(%v) = %v", p, err)
		}
	}
}

// expectPanic runs fn and returns the recovered value, failing if fn
// returns normally.
func expectPanic(t *testing.T, fn func()) (v any) {
	t.Helper()
	defer func() {
		v = recover()
		if v == nil {
			t.Fatal("expected panic")
		}
	}()
	fn()
	return nil
}
