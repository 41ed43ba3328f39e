package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatcherNotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(target, []byte("v1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(20*time.Millisecond, target)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	changes, err := w.Start()
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(target, []byte("v2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changes:
	case <-time.After(3 * time.Second):
		t.Fatal("no notification after write")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.txt")
	other := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(target, []byte("v1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(20*time.Millisecond, target)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	changes, err := w.Start()
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(other, []byte("noise\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changes:
		t.Fatal("notified for an unwatched file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestIsRelevantEvent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.txt")

	w, err := New(0, target)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write to watched file", fsnotify.Event{Name: target, Op: fsnotify.Write}, true},
		{"create of watched file", fsnotify.Event{Name: target, Op: fsnotify.Create}, true},
		{"rename of watched file", fsnotify.Event{Name: target, Op: fsnotify.Rename}, true},
		{"chmod of watched file", fsnotify.Event{Name: target, Op: fsnotify.Chmod}, false},
		{"write to other file", fsnotify.Event{Name: filepath.Join(dir, "b.txt"), Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.isRelevantEvent(tt.event); got != tt.want {
				t.Errorf("isRelevantEvent(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}
