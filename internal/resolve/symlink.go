package resolve

import "sync"

// SymlinkMap maps the real path of a resolved archive to the resolve-area
// symlink the build materialized for it.
//
// The live map is shared with concurrently running resolve phases and may
// grow at any time. Consumers must not iterate it directly: Snapshot copies
// it under the lock, and all reads go against that immutable copy.
type SymlinkMap struct {
	mu sync.Mutex
	m  map[string]string
}

// NewSymlinkMap returns an empty SymlinkMap.
func NewSymlinkMap() *SymlinkMap {
	return &SymlinkMap{m: make(map[string]string)}
}

// Put records the symlink materialized for an archive's real path.
func (s *SymlinkMap) Put(realPath, link string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[realPath] = link
}

// Snapshot returns an immutable copy of the current mapping. The lock is
// held only for the duration of the copy, never across consumer reads.
func (s *SymlinkMap) Snapshot() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.m))
	for k, v := range s.m {
		out[k] = v
	}
	return out
}

// Len returns the current number of entries.
func (s *SymlinkMap) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
