package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local stores files in a directory on the local filesystem. The directory is
// typically served as static assets under /images/.
type Local struct {
	dir string
}

// NewLocal constructs a local store rooted at dir, creating it if needed.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &Local{dir: dir}, nil
}

// Save writes the stream to dir/name. O_EXCL guards against name collisions;
// a partial file left by a failed copy is removed.
func (l *Local) Save(ctx context.Context, name string, r io.Reader) error {
	path := filepath.Join(l.dir, filepath.Base(name))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}

// Remove deletes dir/name.
func (l *Local) Remove(ctx context.Context, name string) error {
	return os.Remove(filepath.Join(l.dir, filepath.Base(name)))
}
