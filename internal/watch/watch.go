// Package watch re-runs a callback when ARB resource files change. It polls
// content hashes rather than relying on OS file notifications, and batches
// rapid bursts of edits behind a debounce window.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"intlgen/internal/textutil"
)

// Watcher polls a directory tree for resource file changes.
type Watcher struct {
	root     string
	interval time.Duration
	debounce time.Duration
}

// New creates a Watcher over root. interval is the poll period, debounce the
// quiet window that must pass before a change batch fires.
func New(root string, interval, debounce time.Duration) *Watcher {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{root: root, interval: interval, debounce: debounce}
}

// Run polls until the context is cancelled, invoking onChange with the sorted
// batch of changed paths once edits settle. Returns the context error on
// cancellation.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string)) error {
	snapshot, err := w.scan()
	if err != nil {
		return err
	}

	pending := make(map[string]bool)
	var lastChange time.Time

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			current, err := w.scan()
			if err != nil {
				log.Warn().Err(err).Msg("Watch scan failed")
				continue
			}
			changed := Diff(snapshot, current)
			snapshot = current
			if len(changed) > 0 {
				for _, p := range changed {
					pending[p] = true
				}
				lastChange = time.Now()
			}

			if len(pending) > 0 && time.Since(lastChange) >= w.debounce {
				batch := make([]string, 0, len(pending))
				for p := range pending {
					batch = append(batch, p)
				}
				sort.Strings(batch)
				pending = make(map[string]bool)
				log.Info().Int("files", len(batch)).Msg("Resource files changed")
				onChange(batch)
			}
		}
	}
}

// scan hashes every .arb file under root.
func (w *Watcher) scan() (map[string]string, error) {
	snapshot := make(map[string]string)
	err := filepath.Walk(w.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".arb") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		snapshot[path] = textutil.Hash(data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Diff returns the sorted paths that were added, removed, or rewritten
// between two snapshots.
func Diff(old, current map[string]string) []string {
	var changed []string
	for path, hash := range current {
		if prev, ok := old[path]; !ok || prev != hash {
			changed = append(changed, path)
		}
	}
	for path := range old {
		if _, ok := current[path]; !ok {
			changed = append(changed, path)
		}
	}
	sort.Strings(changed)
	return changed
}
