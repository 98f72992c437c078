package core

// OutputEntry is one compiled artifact of a target: a file at RelPath under
// the output directory Dir. Downstream consumers reference compiled outputs
// both by the bare relative path and by the joined absolute path, so
// attribution registers both forms.
type OutputEntry struct {
	Dir     string
	RelPath string
}

// OutputManifest lists the compiled outputs produced for targets this
// invocation. Targets with no recorded outputs yield an empty slice.
type OutputManifest interface {
	Outputs(id TargetID) []OutputEntry
}

// MapManifest is an OutputManifest backed by a plain map, suitable for
// snapshot loading and tests.
type MapManifest map[TargetID][]OutputEntry

func (m MapManifest) Outputs(id TargetID) []OutputEntry { return m[id] }

// DistributionLocator exposes system properties of the active JVM
// distribution, used to locate platform classpath directories.
type DistributionLocator interface {
	// SystemProperty returns the value of the named property, or "" when
	// the distribution does not define it.
	SystemProperty(key string) string
}
