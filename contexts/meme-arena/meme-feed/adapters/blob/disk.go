package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"memearena/contexts/meme-arena/meme-feed/ports"
)

// DiskStore writes uploaded images under a media directory served as static
// files. Keys are content-addressed upstream, so a write to an existing key
// is a no-op returning the same public URL.
type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir string, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &DiskStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *DiskStore) Put(_ context.Context, key string, _ string, data []byte) (string, error) {
	path := filepath.Join(s.dir, filepath.Base(key))
	if _, err := os.Stat(path); err == nil {
		return s.publicURL(key), nil
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("publish blob: %w", err)
	}
	return s.publicURL(key), nil
}

func (s *DiskStore) publicURL(key string) string {
	return s.baseURL + "/media/" + filepath.Base(key)
}

var _ ports.BlobStore = (*DiskStore)(nil)
