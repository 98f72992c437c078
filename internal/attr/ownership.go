// Package attr builds the file ownership index: the authoritative mapping
// from every known file-producing artifact of a build invocation (source
// path, compiled-class path, archive entry) to the ordered set of targets
// that own it.
package attr

import (
	"path/filepath"
	"sort"

	"depattr/internal/archive"
	"depattr/internal/core"
	"depattr/internal/resolve"
)

// Config carries everything one ownership build consumes.
type Config struct {
	// Targets are the targets in play for this invocation, in declaration
	// order. Declaration order decides ownership precedence between direct
	// registrations of the same file.
	Targets []*core.Target

	// BuildRoot is the absolute root that declared source paths are
	// relative to.
	BuildRoot string

	// Outputs lists compiled outputs per target. May be nil.
	Outputs core.OutputManifest

	// Report is the resolution record for this invocation. Nil means no
	// resolution ran; archive-derived ownership is simply absent then.
	Report *resolve.Report

	// Symlinks maps resolved archives to their materialized symlinks.
	// May be nil. Read once via Snapshot, never live.
	Symlinks *resolve.SymlinkMap

	// Archives caches archive listings. A nil value gets a fresh index.
	Archives *archive.Index
}

// Ownership is the built file ownership index. Immutable once constructed.
type Ownership struct {
	byFile map[string]*core.OrderedTargetSet
}

// BuildOwnership runs the single attribution pass over cfg.
//
// Registration order is the precedence contract: declared sources first,
// then derived wrapper sources, then compiled outputs, then archive-derived
// classfiles. A file registered by several of these keeps all owners, in
// that order; the direct producer is always the canonical (first) owner.
//
// An unreadable archive aborts the build with an *AttributionError. Missing
// optional inputs (no report, no symlink for an archive) degrade silently to
// an empty contribution.
func BuildOwnership(cfg Config) (*Ownership, error) {
	own := &Ownership{byFile: make(map[string]*core.OrderedTargetSet)}

	// Auxiliary index: which library aggregates declare each (org, name).
	declaring := make(map[core.LibraryReference]*core.OrderedTargetSet)

	for _, t := range cfg.Targets {
		switch t.Kind {
		case core.KindSource:
			own.registerSources(cfg.BuildRoot, t, t)
		case core.KindLibrary:
			for _, ref := range t.Libraries {
				set, ok := declaring[ref]
				if !ok {
					set = core.NewOrderedTargetSet()
					declaring[ref] = set
				}
				set.Add(t)
			}
		case core.KindDerivedWrapper:
			own.registerSources(cfg.BuildRoot, t, t)
			// Nested derived sources belong to the outer target that
			// consumes them, not to the sub-target that declares them.
			for _, sub := range t.Derived {
				own.registerSources(cfg.BuildRoot, sub, t)
			}
		}
	}

	if cfg.Outputs != nil {
		for _, t := range flattenTargets(cfg.Targets) {
			for _, out := range cfg.Outputs.Outputs(t.ID) {
				// Both forms: consumers reference compiled classes by the
				// bare relative path and by the joined absolute path.
				own.register(out.RelPath, t)
				own.register(filepath.Join(out.Dir, out.RelPath), t)
			}
		}
	}

	if cfg.Report != nil {
		if err := own.registerArchiveClassfiles(cfg, declaring); err != nil {
			return nil, err
		}
	}

	return own, nil
}

func (o *Ownership) registerSources(root string, from, owner *core.Target) {
	for _, src := range from.Sources {
		o.register(filepath.Join(root, src), owner)
	}
}

func (o *Ownership) register(file string, t *core.Target) {
	set, ok := o.byFile[file]
	if !ok {
		set = core.NewOrderedTargetSet()
		o.byFile[file] = set
	}
	set.Add(t)
}

// registerArchiveClassfiles attributes every classfile inside the archives a
// declared reference transitively resolves to, to the targets declaring that
// reference.
func (o *Ownership) registerArchiveClassfiles(cfg Config, declaring map[core.LibraryReference]*core.OrderedTargetSet) error {
	archives := cfg.Archives
	if archives == nil {
		var err error
		archives, err = archive.NewIndex(0)
		if err != nil {
			return err
		}
	}

	// Other build phases mutate the live symlink map concurrently; all
	// reads below go against this one immutable copy.
	var snapshot map[string]string
	if cfg.Symlinks != nil {
		snapshot = cfg.Symlinks.Snapshot()
	}

	coords := resolve.NewCoordinateMap(cfg.Report)
	for _, ref := range cfg.Report.Refs() {
		owners, ok := declaring[ref]
		if !ok {
			continue
		}
		for _, jar := range coords.TransitiveArchives(ref) {
			real := jar
			if resolved, err := filepath.EvalSymlinks(jar); err == nil {
				real = resolved
			}
			link, ok := snapshot[real]
			if !ok {
				// Archive not materialized this run; skip it.
				continue
			}
			entries, err := archives.Entries(link)
			if err != nil {
				return archiveError(link, err)
			}
			for _, cls := range entries {
				for _, owner := range owners.Targets() {
					o.register(cls, owner)
				}
			}
		}
	}
	return nil
}

// flattenTargets returns the targets plus their derived sub-targets, outer
// targets first, without duplicates.
func flattenTargets(targets []*core.Target) []*core.Target {
	seen := make(map[core.TargetID]struct{}, len(targets))
	out := make([]*core.Target, 0, len(targets))
	var add func(t *core.Target)
	add = func(t *core.Target) {
		if t == nil {
			return
		}
		if _, dup := seen[t.ID]; dup {
			return
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
		for _, sub := range t.Derived {
			add(sub)
		}
	}
	for _, t := range targets {
		add(t)
	}
	return out
}

// Owners returns the owning targets of file in precedence order, or nil if
// the file is unknown to the index.
func (o *Ownership) Owners(file string) []*core.Target {
	set, ok := o.byFile[file]
	if !ok {
		return nil
	}
	return set.Targets()
}

// CanonicalOwner returns the first-registered owner of file.
func (o *Ownership) CanonicalOwner(file string) (*core.Target, bool) {
	set, ok := o.byFile[file]
	if !ok {
		return nil, false
	}
	return set.First(), true
}

// Files returns every indexed file identifier, sorted.
func (o *Ownership) Files() []string {
	out := make([]string, 0, len(o.byFile))
	for f := range o.byFile {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of indexed file identifiers.
func (o *Ownership) Len() int { return len(o.byFile) }
