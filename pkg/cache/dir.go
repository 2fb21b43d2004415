package cache

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/blockdiag/pkg/errors"
)

// tempPrefix marks files that a Put has not yet renamed into place.
const tempPrefix = ".put-"

// Dir keeps one file per entry under root, sharded by the first two digest
// characters. An entry expires ttl after it was written; a ttl of zero
// keeps entries forever.
type Dir struct {
	root string
	ttl  time.Duration
	now  func() time.Time
}

// OpenDir creates root if needed and returns a cache over it.
func OpenDir(root string, ttl time.Duration) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create cache dir")
	}
	return &Dir{root: root, ttl: ttl, now: time.Now}, nil
}

// Root returns the cache directory.
func (d *Dir) Root() string { return d.root }

func (d *Dir) path(k Key) string {
	name := k.String()
	return filepath.Join(d.root, name[:2], name[2:])
}

func (d *Dir) expired(mod time.Time) bool {
	return d.ttl > 0 && d.now().Sub(mod) > d.ttl
}

// Get reads the entry for k. Expired entries are removed and reported as
// a miss.
func (d *Dir) Get(ctx context.Context, k Key) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if err := k.validate(); err != nil {
		return nil, false, err
	}
	path := d.path(k)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if d.expired(info.ModTime()) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Put writes data to a temporary file and renames it over the entry, so a
// concurrent Get sees either the old bytes or the new ones.
func (d *Dir) Put(ctx context.Context, k Key, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := k.validate(); err != nil {
		return err
	}
	path := d.path(k)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), tempPrefix+"*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Prune removes expired entries and leftover temporary files. It returns
// how many files were removed.
func (d *Dir) Prune(ctx context.Context) (int, error) {
	n := 0
	err := filepath.WalkDir(d.root, func(path string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.IsDir() {
			return nil
		}
		info, err := e.Info()
		if err != nil {
			return nil
		}
		stale := strings.HasPrefix(e.Name(), tempPrefix) && d.now().Sub(info.ModTime()) > time.Hour
		if !stale && !d.expired(info.ModTime()) {
			return nil
		}
		if err := os.Remove(path); err == nil {
			n++
		}
		return nil
	})
	return n, err
}

// Close does nothing; entries live on disk.
func (d *Dir) Close() error { return nil }

var _ Cache = (*Dir)(nil)
