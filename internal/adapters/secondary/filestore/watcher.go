package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher calls onChange whenever the artifact at path is replaced or rewritten.
// It watches the parent directory because Save renames over the file, which
// drops a watch held on the file itself.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(context.Context)
}

func NewWatcher(path string, debounce time.Duration, onChange func(context.Context)) *Watcher {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{path: filepath.Clean(path), debounce: debounce, onChange: onChange}
}

// Run blocks until ctx is cancelled. The returned error is nil unless the
// watch could not be set up.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	// The server can start on an empty volume before the trainer has run.
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model dir %s: %w", dir, err)
	}
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			log.WithFields(log.Fields{
				"path": event.Name,
				"op":   event.Op.String(),
			}).Debug("model artifact changed")
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("model watcher error")
		case <-timer.C:
			w.onChange(ctx)
		}
	}
}
