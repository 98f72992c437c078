package resolve

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"depattr/internal/core"
)

type reportFile struct {
	Modules []reportModule `yaml:"modules"`
}

type reportModule struct {
	Org     string      `yaml:"org"`
	Name    string      `yaml:"name"`
	Archive string      `yaml:"archive"`
	Deps    []reportRef `yaml:"deps"`
}

type reportRef struct {
	Org  string `yaml:"org"`
	Name string `yaml:"name"`
}

// LoadReport reads a serialized resolution report from a YAML file.
//
// Validation rejects modules with a missing org or name and duplicate
// references; dependency edges pointing at references absent from the report
// are kept as-is (the traversal simply finds no module for them).
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resolution report: %w", err)
	}
	var rf reportFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse resolution report: %w", err)
	}

	seen := make(map[core.LibraryReference]struct{}, len(rf.Modules))
	modules := make([]*Module, 0, len(rf.Modules))
	for _, rm := range rf.Modules {
		org := strings.TrimSpace(rm.Org)
		name := strings.TrimSpace(rm.Name)
		if org == "" || name == "" {
			return nil, fmt.Errorf("parse resolution report: module with empty org or name (org=%q name=%q)", rm.Org, rm.Name)
		}
		ref := core.LibraryReference{Org: org, Name: name}
		if _, dup := seen[ref]; dup {
			return nil, fmt.Errorf("parse resolution report: duplicate module %s", ref)
		}
		seen[ref] = struct{}{}

		deps := make([]core.LibraryReference, 0, len(rm.Deps))
		for _, d := range rm.Deps {
			dOrg := strings.TrimSpace(d.Org)
			dName := strings.TrimSpace(d.Name)
			if dOrg == "" || dName == "" {
				return nil, fmt.Errorf("parse resolution report: module %s has dep with empty org or name", ref)
			}
			deps = append(deps, core.LibraryReference{Org: dOrg, Name: dName})
		}

		modules = append(modules, &Module{
			Ref:     ref,
			Archive: strings.TrimSpace(rm.Archive),
			Deps:    deps,
		})
	}

	return NewReport(modules), nil
}
