// Package cache keeps converted frames so that exporting an unchanged scene
// again skips the external converter.
//
// Entries are addressed by [Key]: the digest of the SVG source plus the
// target format and scale. [Dir] keeps them as plain files under a
// directory; [Disabled] keeps nothing and backs --no-cache.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/blockdiag/pkg/errors"
)

// DefaultTTL is how long converted frames stay cached.
const DefaultTTL = 7 * 24 * time.Hour

// Key identifies one conversion of an SVG frame.
type Key struct {
	Digest string  // Hex SHA-256 of the SVG source
	Format string  // Target format; doubles as the file extension
	Scale  float64 // Raster scale; 1 for vector formats
}

// ExportKey derives the key for converting svg to format at scale.
func ExportKey(svg []byte, format string, scale float64) Key {
	sum := sha256.Sum256(svg)
	return Key{Digest: hex.EncodeToString(sum[:]), Format: strings.ToLower(format), Scale: scale}
}

// String renders the key as digest@<scale>x.<format>.
func (k Key) String() string {
	return k.Digest + "@" + strconv.FormatFloat(k.Scale, 'f', -1, 64) + "x." + k.Format
}

func (k Key) validate() error {
	if len(k.Digest) != sha256.Size*2 {
		return errors.New(errors.ErrCodeInvalidInput, "cache key digest %q is not a sha256 hex string", k.Digest)
	}
	if _, err := hex.DecodeString(k.Digest); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "cache key digest")
	}
	if k.Format == "" || strings.ContainsAny(k.Format, `/\.`) {
		return errors.New(errors.ErrCodeInvalidInput, "cache key format %q", k.Format)
	}
	if k.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache key scale must be positive, got %g", k.Scale)
	}
	return nil
}

// Cache stores converted frames.
type Cache interface {
	// Get returns the stored bytes and whether a live entry was found.
	Get(ctx context.Context, k Key) ([]byte, bool, error)
	// Put stores data under k, replacing any previous entry.
	Put(ctx context.Context, k Key, data []byte) error
	Close() error
}

// Disabled is a Cache that never stores anything.
var Disabled Cache = disabled{}

type disabled struct{}

func (disabled) Get(context.Context, Key) ([]byte, bool, error) { return nil, false, nil }
func (disabled) Put(context.Context, Key, []byte) error         { return nil }
func (disabled) Close() error                                   { return nil }

// DefaultDir returns the per-user cache directory for blockdiag.
func DefaultDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "blockdiag"), nil
}
