package spool

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bft-labs/pushship/pkg/log"
)

// fakeSender records delivered payloads and can be told to fail.
type fakeSender struct {
	mu       sync.Mutex
	payloads []string
	fail     bool
}

func (f *fakeSender) SendPayload(ctx context.Context, payload string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return 0, errors.New("delivery refused")
	}
	f.payloads = append(f.payloads, payload)
	return 200, nil
}

func (f *fakeSender) delivered() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.payloads...)
}

func startWatcher(t *testing.T, dir string, sender Sender) (cancel func()) {
	t.Helper()
	ctx, cancelCtx := context.WithCancel(context.Background())
	done := make(chan struct{})

	w := New(dir, sender, log.NewNoop())
	w.settle = 10 * time.Millisecond

	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	return func() {
		cancelCtx()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop")
		}
	}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestWatcher_DeliversNewFile(t *testing.T) {
	dir := t.TempDir()
	sender := &fakeSender{}
	cancel := startWatcher(t, dir, sender)
	defer cancel()

	path := filepath.Join(dir, "msg.json")
	if err := os.WriteFile(path, []byte(`{"message":{"alert":"hi"}}`), 0o600); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool {
		return len(sender.delivered()) == 1
	})
	if got := sender.delivered()[0]; got != `{"message":{"alert":"hi"}}` {
		t.Errorf("payload = %q", got)
	}

	waitFor(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, sentDir, "msg.json"))
		return err == nil
	})
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("original file still present, err = %v", err)
	}
}

func TestWatcher_DeliversExistingFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "queued.json"), []byte(`{}`), 0o600); err != nil {
		t.Fatal(err)
	}

	sender := &fakeSender{}
	cancel := startWatcher(t, dir, sender)
	defer cancel()

	waitFor(t, func() bool {
		return len(sender.delivered()) == 1
	})
}

func TestWatcher_FailedDeliveryArchived(t *testing.T) {
	dir := t.TempDir()
	sender := &fakeSender{fail: true}
	cancel := startWatcher(t, dir, sender)
	defer cancel()

	if err := os.WriteFile(filepath.Join(dir, "msg.json"), []byte(`{}`), 0o600); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, failedDir, "msg.json"))
		return err == nil
	})
	if got := sender.delivered(); len(got) != 0 {
		t.Errorf("delivered = %v, want none", got)
	}
}

func TestWatcher_IgnoresNonPayloadFiles(t *testing.T) {
	dir := t.TempDir()
	sender := &fakeSender{}
	cancel := startWatcher(t, dir, sender)
	defer cancel()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "msg.json"), []byte(`{}`), 0o600); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool {
		return len(sender.delivered()) == 1
	})
	if _, err := os.Stat(filepath.Join(dir, "notes.txt")); err != nil {
		t.Errorf("non-payload file was touched: %v", err)
	}
}
