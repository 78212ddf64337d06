package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	old := map[string]string{
		"a.arb": "h1",
		"b.arb": "h2",
		"c.arb": "h3",
	}
	current := map[string]string{
		"a.arb": "h1",      // unchanged
		"b.arb": "changed", // rewritten
		"d.arb": "h4",      // added
	}

	assert.Equal(t, []string{"b.arb", "c.arb", "d.arb"}, Diff(old, current))
	assert.Empty(t, Diff(old, old))
}

func TestWatcherDetectsChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "intl_en.arb")
	require.NoError(t, os.WriteFile(path, []byte(`{"k": "v"}`), 0o644))

	w := New(dir, 20*time.Millisecond, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	changed := make(chan []string, 1)
	go func() {
		_ = w.Run(ctx, func(paths []string) {
			select {
			case changed <- paths:
			default:
			}
		})
	}()

	// Give the watcher a moment to take its initial snapshot, then edit.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`{"k": "edited"}`), 0o644))

	select {
	case paths := <-changed:
		assert.Equal(t, []string{path}, paths)
	case <-ctx.Done():
		t.Fatal("watcher did not report the change")
	}
	cancel()
}
