// Package platform identifies classfiles supplied by the JVM runtime itself
// rather than by any build target, so downstream attribution can exclude
// them.
package platform

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"depattr/internal/archive"
	"depattr/internal/core"
)

// System properties naming the platform classpath locations.
// Assumes a HotSpot-compatible distribution that defines the boot classpath
// property.
const (
	propBootClasspath = "sun.boot.class.path"
	propOverrideDirs  = "java.endorsed.dirs"
	propExtensionDirs = "java.ext.dirs"
)

const jarSuffix = ".jar"

// BootstrapJars returns the platform jar files in classloading precedence
// order: override jars, then the boot classpath, then extension jars.
// Only existing regular files are returned; loose classes directories on the
// boot classpath are dropped.
func BootstrapJars(loc core.DistributionLocator) []string {
	// Overrides and extensions are directories holding jars; the boot
	// classpath lists the jar (or directory) paths directly.
	candidates := jarsInDirs(splitPathList(loc.SystemProperty(propOverrideDirs)))
	candidates = append(candidates, splitPathList(loc.SystemProperty(propBootClasspath))...)
	candidates = append(candidates, jarsInDirs(splitPathList(loc.SystemProperty(propExtensionDirs)))...)

	var jars []string
	for _, p := range candidates {
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		jars = append(jars, p)
	}
	return jars
}

// BootstrapClassfiles returns the union of classfile names across all
// platform jars. An unreadable platform jar is fatal, identified by path.
func BootstrapClassfiles(loc core.DistributionLocator, archives *archive.Index) (map[string]struct{}, error) {
	classfiles := make(map[string]struct{})
	for _, jar := range BootstrapJars(loc) {
		entries, err := archives.Entries(jar)
		if err != nil {
			return nil, err
		}
		for _, cls := range entries {
			classfiles[cls] = struct{}{}
		}
	}
	return classfiles, nil
}

func splitPathList(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	var out []string
	for _, p := range filepath.SplitList(v) {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

func jarsInDirs(dirs []string) []string {
	var out []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), jarSuffix) {
				out = append(out, filepath.Join(dir, e.Name()))
			}
		}
	}
	return out
}

// Index computes the bootstrap classfile set at most once and serves it for
// the rest of the invocation.
type Index struct {
	locator  core.DistributionLocator
	archives *archive.Index

	once       sync.Once
	classfiles map[string]struct{}
	err        error
}

// NewIndex returns an unbuilt Index; the scan runs on first use.
func NewIndex(loc core.DistributionLocator, archives *archive.Index) *Index {
	return &Index{locator: loc, archives: archives}
}

// Classfiles returns the platform classfile set, scanning on first call.
func (ix *Index) Classfiles() (map[string]struct{}, error) {
	ix.once.Do(func() {
		ix.classfiles, ix.err = BootstrapClassfiles(ix.locator, ix.archives)
	})
	return ix.classfiles, ix.err
}

// Contains reports whether the platform provides the named classfile.
func (ix *Index) Contains(name string) (bool, error) {
	classfiles, err := ix.Classfiles()
	if err != nil {
		return false, err
	}
	_, ok := classfiles[name]
	return ok, nil
}

// Properties is a DistributionLocator backed by a fixed property map.
type Properties map[string]string

func (p Properties) SystemProperty(key string) string { return p[key] }
