package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNamespaceKey(t *testing.T) {
	if got := DefaultNamespace.Key(KeyMyList); got != "cinetime.my_list" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := Namespace("").Key("x"); got != "x" {
		t.Fatalf("empty namespace should not prefix, got %q", got)
	}
	if DefaultNamespace.Key(KeyMyList) == DefaultNamespace.Key(KeyReminders) {
		t.Fatal("keys collide")
	}
}

func testBackend(t *testing.T, b Backend) {
	t.Helper()
	if _, err := b.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := b.Set("k", []byte("v1")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := b.Set("k", []byte("v2")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := b.Get("k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "v2" {
		t.Fatalf("expected v2, got %q", got)
	}
	if err := b.Delete("k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := b.Delete("k"); err != nil {
		t.Fatalf("delete twice: %v", err)
	}
	if _, err := b.Get("k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryBackend(t *testing.T) {
	testBackend(t, NewMemory())
}

func TestMemoryBackendCopies(t *testing.T) {
	m := NewMemory()
	val := []byte("abc")
	_ = m.Set("k", val)
	val[0] = 'z'
	got, _ := m.Get("k")
	if string(got) != "abc" {
		t.Fatalf("stored value aliased caller slice: %q", got)
	}
}

func TestDiskvBackend(t *testing.T) {
	d, err := NewDiskv(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	testBackend(t, d)
}

func TestDiskvSurvivesReopen(t *testing.T) {
	base := t.TempDir()
	d, err := NewDiskv(base)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	key := DefaultNamespace.Key(KeyUserEmail)
	if err := d.Set(key, []byte(`"me@example.com"`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	again, err := NewDiskv(base)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := again.Get(key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `"me@example.com"` {
		t.Fatalf("unexpected value %q", got)
	}
}

func TestDiskvSeesOtherWriters(t *testing.T) {
	base := t.TempDir()
	reader, err := NewDiskv(base)
	if err != nil {
		t.Fatalf("open reader: %v", err)
	}
	writer, err := NewDiskv(base)
	if err != nil {
		t.Fatalf("open writer: %v", err)
	}
	key := DefaultNamespace.Key(KeyMyList)

	for _, want := range []string{`["1"]`, `["1","2"]`, `[]`} {
		if err := writer.Set(key, []byte(want)); err != nil {
			t.Fatalf("set: %v", err)
		}
		got, err := reader.Get(key)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if string(got) != want {
			t.Fatalf("reader saw %q, want %q", got, want)
		}
	}
}

func TestOpenDrivers(t *testing.T) {
	if _, err := Open(StaticConfig{DriverName: DriverMemory}); err != nil {
		t.Fatalf("memory: %v", err)
	}
	if _, err := Open(StaticConfig{Path: t.TempDir()}); err != nil {
		t.Fatalf("default diskv: %v", err)
	}
	if _, err := Open(StaticConfig{DriverName: "floppy"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
	if _, err := Open(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestDiskvWatchEmitsKeyChanges(t *testing.T) {
	d, err := NewDiskv(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := d.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow the watcher goroutine to start before writing.
	time.Sleep(50 * time.Millisecond)

	key := DefaultNamespace.Key(KeyMyList)
	if err := d.Set(key, []byte("[]")); err != nil {
		t.Fatalf("set: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt, ok := <-ch:
			if !ok {
				t.Fatal("watch channel closed early")
			}
			if evt.Key == key {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for key change event")
		}
	}
}
