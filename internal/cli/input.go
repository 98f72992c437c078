package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

const (
	ExitSuccess            = 0
	ExitAttributionFailure = 1
	ExitInvalidInvocation  = 2
	ExitInputError         = 3
	ExitInternalError      = 4
)

// Invocation is the fully canonicalized description of one attribution run.
//
// All paths are normalized (Clean) and relative paths are resolved relative
// to BuildRoot. BuildRoot is required and must be absolute; this prevents
// any dependency on the process current working directory.
type Invocation struct {
	BuildRoot    string
	SnapshotPath string
	ReportPath   string // optional; "" means no resolution ran
	ScanPlatform bool

	OriginalSnapshot string
	OriginalReport   string
}

type InvocationError struct {
	ExitCode int
	Message  string
}

func (e *InvocationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func invalidInvocationf(format string, args ...any) error {
	return &InvocationError{ExitCode: ExitInvalidInvocation, Message: fmt.Sprintf(format, args...)}
}

// ParseInvocation parses CLI flags into a canonical Invocation.
//
// Determinism goals:
//   - Does not read env vars.
//   - Does not read/assume the process CWD.
//   - Requires BuildRoot to be explicit and absolute.
func ParseInvocation(args []string) (Invocation, error) {
	fs := flag.NewFlagSet("depattr", flag.ContinueOnError)
	fs.SetOutput(io.Discard) // parsing errors are returned, not printed

	var buildRoot string
	var snapshotPath string
	var reportPath string
	var scanPlatform bool

	fs.StringVar(&buildRoot, "buildroot", "", "Absolute build root. Required.")
	fs.StringVar(&snapshotPath, "snapshot", "", "Build snapshot path. Required.")
	fs.StringVar(&reportPath, "report", "", "Resolution report path (optional).")
	fs.BoolVar(&scanPlatform, "platform", false, "Also scan platform jars from the snapshot's JVM properties.")

	if err := fs.Parse(args); err != nil {
		return Invocation{}, invalidInvocationf("%v", err)
	}
	if fs.NArg() != 0 {
		return Invocation{}, invalidInvocationf("unexpected positional arguments: %q", strings.Join(fs.Args(), " "))
	}

	buildRoot = filepath.Clean(buildRoot)
	if buildRoot == "" || buildRoot == "." {
		return Invocation{}, invalidInvocationf("--buildroot is required")
	}
	if !filepath.IsAbs(buildRoot) {
		return Invocation{}, invalidInvocationf("--buildroot must be an absolute path (got %q)", buildRoot)
	}

	if snapshotPath == "" {
		return Invocation{}, invalidInvocationf("--snapshot is required")
	}

	resolvedSnapshot, err := resolveUnderRoot(buildRoot, snapshotPath)
	if err != nil {
		return Invocation{}, err
	}

	inv := Invocation{
		BuildRoot:        buildRoot,
		SnapshotPath:     resolvedSnapshot,
		ScanPlatform:     scanPlatform,
		OriginalSnapshot: snapshotPath,
		OriginalReport:   reportPath,
	}

	if strings.TrimSpace(reportPath) != "" {
		resolvedReport, err := resolveUnderRoot(buildRoot, reportPath)
		if err != nil {
			return Invocation{}, err
		}
		inv.ReportPath = resolvedReport
	}

	return inv, nil
}

func resolveUnderRoot(root, p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", invalidInvocationf("path must not be empty")
	}
	clean := filepath.Clean(p)
	if clean == "." {
		return "", invalidInvocationf("path must not be '.'")
	}

	// If absolute, accept as-is; it is still deterministic.
	// If relative, resolve under the build root.
	if filepath.IsAbs(clean) {
		return clean, nil
	}

	// BuildRoot is required to be absolute, so Join does not consult the
	// process CWD.
	return filepath.Clean(filepath.Join(root, clean)), nil
}

// ExitCode extracts a semantic exit code from a ParseInvocation error.
// If the error is not a known invocation error, it returns ExitInternalError.
func ExitCode(err error) int {
	var invErr *InvocationError
	if errors.As(err, &invErr) && invErr != nil {
		if invErr.ExitCode != 0 {
			return invErr.ExitCode
		}
		return ExitInvalidInvocation
	}
	if err == nil {
		return ExitSuccess
	}
	return ExitInternalError
}
