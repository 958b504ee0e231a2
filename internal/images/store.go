package images

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// RelDir is the image directory name used in persisted catalog paths.
const RelDir = "images"

var reUnsafe = regexp.MustCompile(`[^\w.\-]`)

// BaseNameFor returns the deterministic base filename for an item's image:
// the sanitized SKU when present, otherwise a content hash of the URL. The
// same item always maps to the same base across runs.
func BaseNameFor(sku, rawURL string) string {
	sku = strings.TrimSpace(sku)
	if sku != "" {
		return reUnsafe.ReplaceAllString(sku, "_")
	}
	sum := sha1.Sum([]byte(rawURL))
	return hex.EncodeToString(sum[:])
}

// ExtFor picks the file extension: the URL's path extension when it has one,
// otherwise inferred from the response content type, defaulting to jpg.
func ExtFor(rawURL, contentType string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if ext := strings.ToLower(strings.TrimPrefix(path.Ext(u.Path), ".")); ext != "" {
			return ext
		}
	}
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "webp"):
		return "webp"
	case strings.Contains(ct, "png"):
		return "png"
	case strings.Contains(ct, "gif"):
		return "gif"
	}
	return "jpg"
}

// Store writes mirrored images under a local directory and answers reuse
// checks so re-runs skip the network entirely for images already on disk.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir (e.g. out/images).
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// FindValid reports an already-mirrored file for a base name, in any
// extension, provided it exceeds the minimum valid-image size. Undersized
// leftovers from failed runs are ignored and get re-fetched.
func (s *Store) FindValid(base string) (string, bool) {
	matches, err := filepath.Glob(filepath.Join(s.dir, base+".*"))
	if err != nil {
		return "", false
	}
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		if info.Size() >= MinImageBytes {
			return filepath.Base(match), true
		}
	}
	return "", false
}

// Save writes the image bytes and returns the catalog-relative path
// (images/<name>). The directory is created on first use.
func (s *Store) Save(name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create images directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	return path.Join(RelDir, name), nil
}

// RelPath returns the catalog-relative path for an already-stored file name.
func (s *Store) RelPath(name string) string {
	return path.Join(RelDir, name)
}
