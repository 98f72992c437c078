package resolve

import "testing"

func TestSymlinkMap_SnapshotIsImmutableCopy(t *testing.T) {
	m := NewSymlinkMap()
	m.Put("/cache/widgets.jar", "/resolve/widgets.jar")

	snap := m.Snapshot()
	if len(snap) != 1 || snap["/cache/widgets.jar"] != "/resolve/widgets.jar" {
		t.Fatalf("unexpected snapshot: %v", snap)
	}

	// Concurrent phases keep mutating the live map; the snapshot must not see it.
	m.Put("/cache/late.jar", "/resolve/late.jar")
	if _, ok := snap["/cache/late.jar"]; ok {
		t.Fatalf("snapshot observed a later mutation")
	}
	if m.Len() != 2 {
		t.Fatalf("live map should have 2 entries, got %d", m.Len())
	}

	// And mutating the snapshot must not leak back.
	snap["/cache/injected.jar"] = "/resolve/injected.jar"
	if _, ok := m.Snapshot()["/cache/injected.jar"]; ok {
		t.Fatalf("snapshot mutation leaked into the live map")
	}
}
