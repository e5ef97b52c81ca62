// Package spool delivers payload files dropped into a spool directory.
// Each *.json file is submitted to the push server once; delivered files
// move to sent/, failed ones to failed/.
package spool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/pushship/pkg/log"
)

const (
	sentDir   = "sent"
	failedDir = "failed"
)

// Sender is the subset of the push sender used by the watcher.
type Sender interface {
	SendPayload(ctx context.Context, payload string) (int, error)
}

// Watcher watches a spool directory and delivers payload files as they
// appear.
type Watcher struct {
	dir    string
	sender Sender
	logger log.Logger

	// settle is how long to wait after a write event before reading the
	// file, so partially written payloads are not picked up.
	settle time.Duration
}

// New creates a watcher for dir. Files already present when Run starts are
// delivered first.
func New(dir string, sender Sender, logger log.Logger) *Watcher {
	return &Watcher{
		dir:    dir,
		sender: sender,
		logger: logger,
		settle: 100 * time.Millisecond,
	}
}

// Run blocks until ctx is cancelled, delivering payload files as they
// arrive.
func (w *Watcher) Run(ctx context.Context) error {
	for _, sub := range []string{sentDir, failedDir} {
		if err := os.MkdirAll(filepath.Join(w.dir, sub), 0o755); err != nil {
			return fmt.Errorf("spool: create %s dir: %w", sub, err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("spool: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("spool: watch %s: %w", w.dir, err)
	}

	// Drain anything that was queued before we started.
	w.processExisting(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !isPayloadFile(event.Name) {
				continue
			}
			w.settleAndProcess(ctx, event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("spool watcher error", log.Err(err))
		}
	}
}

// processExisting delivers payload files already sitting in the spool.
func (w *Watcher) processExisting(ctx context.Context) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Error("spool scan failed", log.Err(err))
		return
	}
	for _, e := range entries {
		if ctx.Err() != nil {
			return
		}
		if e.IsDir() || !isPayloadFile(e.Name()) {
			continue
		}
		w.process(ctx, filepath.Join(w.dir, e.Name()))
	}
}

func (w *Watcher) settleAndProcess(ctx context.Context, path string) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(w.settle):
	}
	w.process(ctx, path)
}

// process delivers one payload file and files it under sent/ or failed/.
func (w *Watcher) process(ctx context.Context, path string) {
	payload, err := os.ReadFile(path)
	if err != nil {
		// The file may already have been processed off a duplicate event.
		if os.IsNotExist(err) {
			return
		}
		w.logger.Error("spool read failed", log.String("file", path), log.Err(err))
		return
	}

	status, err := w.sender.SendPayload(ctx, string(payload))
	if err != nil {
		w.logger.Error("spool delivery failed", log.String("file", path), log.Err(err))
		w.file(path, failedDir)
		return
	}

	w.logger.Info("spool delivery complete",
		log.String("file", path),
		log.Int("status", status))
	w.file(path, sentDir)
}

// file moves a processed payload into the given subdirectory.
func (w *Watcher) file(path, sub string) {
	dest := filepath.Join(w.dir, sub, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		w.logger.Error("spool archive failed", log.String("file", path), log.Err(err))
	}
}

func isPayloadFile(path string) bool {
	return strings.HasSuffix(path, ".json")
}
