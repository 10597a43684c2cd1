// Package cache persists fetched API pages keyed by their request URL, so
// that a re-run of the tool against the same cache directory touches the
// network only for URLs it has never seen.
package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Page is the cached unit: the raw items of one API page plus the URL of the
// following page, if any. Items are kept verbatim as returned by the API.
type Page struct {
	Items   []json.RawMessage `json:"items"`
	NextURL *string           `json:"next_url"`
}

// Store is a key-value store of pages keyed by request URL. Get returns
// (nil, nil) on a miss. Entries are immutable: a URL is written at most once
// and never refreshed. Implementations are not safe for use by multiple
// processes against the same backing storage.
type Store interface {
	Get(url string) (*Page, error)
	Put(url string, page *Page) error
}

// FileStore keeps one JSON file per cached URL inside a single directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Get(url string) (*Page, error) {
	data, err := os.ReadFile(s.path(url))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cached page: %w", err)
	}
	var page Page
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("decoding cached page for %s: %w", url, err)
	}
	return &page, nil
}

func (s *FileStore) Put(url string, page *Page) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("encoding page for %s: %w", url, err)
	}
	f, err := os.Create(s.path(url))
	if err != nil {
		return fmt.Errorf("creating cache file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing cache file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("syncing cache file: %w", err)
	}
	return f.Close()
}

func (s *FileStore) path(url string) string {
	return filepath.Join(s.dir, Filename(url))
}

// maxSlugLen bounds the human-readable part of a cache filename.
const maxSlugLen = 64

// Filename derives the cache filename for a request URL. The name combines a
// sanitized, length-bounded slug of the URL (for scanning the cache directory
// by eye) with a short SHA-256 fragment of the full URL (so that URLs that
// agree up to the truncation length still get distinct files).
func Filename(url string) string {
	sum := sha256.Sum256([]byte(url))
	hash := fmt.Sprintf("%x", sum)[:7]
	return slugify(url) + "--" + hash + ".json"
}

func slugify(url string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '-'
		}
	}, url)
	if len(slug) > maxSlugLen {
		slug = slug[:maxSlugLen]
	}
	return strings.Trim(slug, "-")
}
