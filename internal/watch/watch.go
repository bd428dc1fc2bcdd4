// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch reconverts notebooks as they change on disk. It drives
// the same batch conversion path as the CLI, so ledger skip semantics
// and status output are identical to a manual run.
package watch

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pdiddy/mlvtool/internal/convert"
	"github.com/pdiddy/mlvtool/internal/ledger"
	"github.com/pdiddy/mlvtool/pkg/types"
)

// debounce batches the burst of write events editors emit per save.
const debounce = 200 * time.Millisecond

// Watch converts changed .ipynb files under dir until ctx is cancelled.
// Events are debounced and deduplicated, then handed to the batch
// converter. Cancellation is the normal exit and returns nil.
func Watch(ctx context.Context, dir, outDir string, policy types.FilterPolicy, led *ledger.Ledger, w io.Writer) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	fmt.Fprintf(w, "watching %s\n", dir)

	pending := make(map[string]bool)
	var timer *time.Timer
	var timerC <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			timerC = timer.C
			return
		}
		timer.Reset(debounce)
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			fmt.Fprintln(w, "watch stopped")
			return nil

		case <-timerC:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			pending = make(map[string]bool)
			convert.ConvertBatch(paths, outDir, policy, led, false, w)

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !strings.HasSuffix(ev.Name, ".ipynb") {
				continue
			}
			if strings.Contains(ev.Name, ".ipynb_checkpoints") {
				continue
			}
			pending[ev.Name] = true
			schedule()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(w, "watch error: %v\n", err)
		}
	}
}
