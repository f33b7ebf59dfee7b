package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDiskStorePutAndReplay(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, "https://arena.example")
	if err != nil {
		t.Fatalf("new disk store failed: %v", err)
	}

	url, err := store.Put(context.Background(), "abc123.png", "image/png", []byte("bytes"))
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if url != "https://arena.example/media/abc123.png" {
		t.Fatalf("unexpected public url: %s", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "abc123.png"))
	if err != nil {
		t.Fatalf("read stored blob: %v", err)
	}
	if string(data) != "bytes" {
		t.Fatalf("unexpected blob content: %q", data)
	}

	// Replaying the same key is a no-op that keeps the original content.
	replay, err := store.Put(context.Background(), "abc123.png", "image/png", []byte("other"))
	if err != nil {
		t.Fatalf("replay put failed: %v", err)
	}
	if replay != url {
		t.Fatalf("expected same url on replay, got %s", replay)
	}
	data, _ = os.ReadFile(filepath.Join(dir, "abc123.png"))
	if string(data) != "bytes" {
		t.Fatalf("replay overwrote blob: %q", data)
	}
}

func TestDiskStoreIgnoresPathTraversalInKeys(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, "")
	if err != nil {
		t.Fatalf("new disk store failed: %v", err)
	}
	if _, err := store.Put(context.Background(), "../escape.png", "image/png", []byte("x")); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "escape.png")); err != nil {
		t.Fatalf("expected blob inside media dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "escape.png")); err == nil {
		t.Fatalf("blob escaped the media dir")
	}
}
