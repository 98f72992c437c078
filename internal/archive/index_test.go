package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeJar(t *testing.T, path string, entries ...string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating jar: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, name := range entries {
		ew, err := w.Create(name)
		if err != nil {
			t.Fatalf("adding entry %q: %v", name, err)
		}
		if _, err := ew.Write([]byte("stub")); err != nil {
			t.Fatalf("writing entry %q: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing jar: %v", err)
	}
}

func TestEntries_FiltersToClassfiles(t *testing.T) {
	jar := filepath.Join(t.TempDir(), "widgets.jar")
	writeJar(t, jar,
		"META-INF/MANIFEST.MF",
		"com/acme/Widget.class",
		"com/acme/widget.properties",
		"com/acme/Widget$Builder.class",
	)

	ix, err := NewIndex(0)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	got, err := ix.Entries(jar)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	want := []string{"com/acme/Widget.class", "com/acme/Widget$Builder.class"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Entries = %v, want %v", got, want)
	}
}

func TestEntries_CachedListingSurvivesArchiveRemoval(t *testing.T) {
	jar := filepath.Join(t.TempDir(), "cached.jar")
	writeJar(t, jar, "A.class")

	ix, err := NewIndex(0)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	first, err := ix.Entries(jar)
	if err != nil {
		t.Fatalf("first Entries: %v", err)
	}

	// The listing is read at most once per path; a second call must not
	// touch the filesystem again.
	if err := os.Remove(jar); err != nil {
		t.Fatalf("removing jar: %v", err)
	}
	second, err := ix.Entries(jar)
	if err != nil {
		t.Fatalf("second Entries: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("cached listing diverged: %v vs %v", first, second)
	}
}

func TestEntries_ReturnedSliceIsRestartable(t *testing.T) {
	jar := filepath.Join(t.TempDir(), "copy.jar")
	writeJar(t, jar, "A.class", "B.class")

	ix, err := NewIndex(0)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	first, err := ix.Entries(jar)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	first[0] = "mutated"

	second, err := ix.Entries(jar)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if second[0] != "A.class" {
		t.Fatalf("mutating a returned listing must not corrupt the cache: %v", second)
	}
}

func TestEntries_CorruptArchiveIsFatalWithPath(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "corrupt.jar")
	if err := os.WriteFile(bad, []byte("not a zip"), 0644); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}

	ix, err := NewIndex(0)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	entries, err := ix.Entries(bad)
	if err == nil {
		t.Fatalf("expected error for corrupt archive")
	}
	if entries != nil {
		t.Fatalf("no partial result allowed, got %v", entries)
	}
	if !strings.Contains(err.Error(), bad) {
		t.Fatalf("error must identify the archive path, got %q", err)
	}
}

func TestEntries_MissingArchiveIsFatal(t *testing.T) {
	ix, err := NewIndex(0)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	if _, err := ix.Entries(filepath.Join(t.TempDir(), "missing.jar")); err == nil {
		t.Fatalf("expected error for missing archive")
	}
}
