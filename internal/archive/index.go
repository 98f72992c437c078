// Package archive lists the compiled-artifact entries of jar archives.
//
// Listings are read once per archive path per invocation and served from an
// in-memory cache afterwards; callers may re-iterate a listing freely without
// touching the filesystem again.
package archive

import (
	"archive/zip"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ClassSuffix is the entry-name suffix identifying compiled class files.
const ClassSuffix = ".class"

// DefaultCacheSize bounds the number of archive listings kept in memory.
// A resolve of a large third-party closure stays well under this.
const DefaultCacheSize = 4096

// Index caches the classfile listings of jar archives.
//
// Safe for concurrent use.
type Index struct {
	cache *lru.Cache[string, []string]
}

// NewIndex returns an Index holding at most size listings.
func NewIndex(size int) (*Index, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, []string](size)
	if err != nil {
		return nil, fmt.Errorf("creating archive cache: %w", err)
	}
	return &Index{cache: cache}, nil
}

// Entries returns the names of all .class entries inside the archive at
// path, in archive order. The archive is opened read-only and at most once;
// repeated calls return the cached listing.
//
// An archive that cannot be opened or parsed is a fatal condition: the error
// identifies the archive path and no partial listing is returned.
func (ix *Index) Entries(path string) ([]string, error) {
	if cached, ok := ix.cache.Get(path); ok {
		return copyEntries(cached), nil
	}

	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("listing archive %s: %w", path, err)
	}
	defer r.Close()

	var entries []string
	for _, f := range r.File {
		if strings.HasSuffix(f.Name, ClassSuffix) {
			entries = append(entries, f.Name)
		}
	}

	ix.cache.Add(path, entries)
	return copyEntries(entries), nil
}

func copyEntries(entries []string) []string {
	out := make([]string, len(entries))
	copy(out, entries)
	return out
}
