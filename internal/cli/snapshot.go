package cli

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"depattr/internal/core"
	"depattr/internal/platform"
	"depattr/internal/resolve"
)

type snapshotFile struct {
	Targets  []snapshotTarget  `yaml:"targets"`
	Outputs  []snapshotOutput  `yaml:"outputs"`
	Symlinks []snapshotSymlink `yaml:"symlinks"`
	JVMProps map[string]string `yaml:"jvmprops"`
}

type snapshotTarget struct {
	ID        string           `yaml:"id"`
	Kind      string           `yaml:"kind"`
	Sources   []string         `yaml:"sources"`
	Deps      []string         `yaml:"deps"`
	Libraries []snapshotRef    `yaml:"libraries"`
	Derived   []snapshotTarget `yaml:"derived"`
}

type snapshotRef struct {
	Org  string `yaml:"org"`
	Name string `yaml:"name"`
}

type snapshotOutput struct {
	Target string   `yaml:"target"`
	Dir    string   `yaml:"dir"`
	Files  []string `yaml:"files"`
}

type snapshotSymlink struct {
	Real string `yaml:"real"`
	Link string `yaml:"link"`
}

// Snapshot is the decoded, domain-typed form of a build snapshot file: the
// target graph plus the per-invocation collaborator data the attribution
// pass consumes.
type Snapshot struct {
	Targets  []*core.Target
	Outputs  core.MapManifest
	Symlinks *resolve.SymlinkMap
	JVMProps platform.Properties
}

// LoadSnapshot reads and validates a build snapshot from a YAML file.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var sf snapshotFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	if len(sf.Targets) == 0 {
		return nil, fmt.Errorf("parse snapshot: no targets")
	}

	targets := make([]*core.Target, 0, len(sf.Targets))
	for i := range sf.Targets {
		t, err := decodeTarget(&sf.Targets[i])
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}

	outputs := make(core.MapManifest, len(sf.Outputs))
	for _, o := range sf.Outputs {
		id := core.TargetID(strings.TrimSpace(o.Target))
		if id == "" {
			return nil, fmt.Errorf("parse snapshot: output entry with empty target")
		}
		for _, f := range o.Files {
			outputs[id] = append(outputs[id], core.OutputEntry{Dir: o.Dir, RelPath: f})
		}
	}

	symlinks := resolve.NewSymlinkMap()
	for _, s := range sf.Symlinks {
		if s.Real == "" || s.Link == "" {
			return nil, fmt.Errorf("parse snapshot: symlink entry with empty real or link path")
		}
		symlinks.Put(s.Real, s.Link)
	}

	return &Snapshot{
		Targets:  targets,
		Outputs:  outputs,
		Symlinks: symlinks,
		JVMProps: platform.Properties(sf.JVMProps),
	}, nil
}

func decodeTarget(st *snapshotTarget) (*core.Target, error) {
	id := strings.TrimSpace(st.ID)
	if id == "" {
		return nil, fmt.Errorf("parse snapshot: target with empty id")
	}
	kind := core.TargetKind(strings.TrimSpace(st.Kind))
	if !kind.Valid() {
		return nil, fmt.Errorf("parse snapshot: target %q has unknown kind %q", id, st.Kind)
	}
	if kind != core.KindDerivedWrapper && len(st.Derived) > 0 {
		return nil, fmt.Errorf("parse snapshot: target %q has derived sub-targets but kind %q", id, kind)
	}

	t := &core.Target{
		ID:      core.TargetID(id),
		Kind:    kind,
		Sources: st.Sources,
	}
	for _, d := range st.Deps {
		t.Deps = append(t.Deps, core.TargetID(d))
	}
	for _, ref := range st.Libraries {
		org := strings.TrimSpace(ref.Org)
		name := strings.TrimSpace(ref.Name)
		if org == "" || name == "" {
			return nil, fmt.Errorf("parse snapshot: target %q has library with empty org or name", id)
		}
		t.Libraries = append(t.Libraries, core.LibraryReference{Org: org, Name: name})
	}
	for i := range st.Derived {
		sub, err := decodeTarget(&st.Derived[i])
		if err != nil {
			return nil, err
		}
		t.Derived = append(t.Derived, sub)
	}
	return t, nil
}
