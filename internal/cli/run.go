package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"depattr/internal/archive"
	"depattr/internal/attr"
	"depattr/internal/graph"
	"depattr/internal/platform"
	"depattr/internal/resolve"
)

// CLIResult carries the semantic exit code of an invocation.
type CLIResult struct {
	ExitCode int
}

// Report is the JSON document an invocation writes to its output stream.
type Report struct {
	// Ownership maps each file identifier to its owners in precedence order.
	Ownership map[string][]string `json:"ownership"`

	// Closure maps each target to its sorted transitive dependency set.
	Closure map[string][]string `json:"closure"`

	// Cycles lists truncated dependency edges as "from -> to". Present only
	// when the graph was cyclic.
	Cycles []string `json:"cycles,omitempty"`

	// PlatformClassfiles is the sorted bootstrap classfile set. Present only
	// when platform scanning was requested.
	PlatformClassfiles []string `json:"platform_classfiles,omitempty"`
}

// Run is a high-level entrypoint suitable for black-box tests. It accepts
// the argument slice (excluding argv[0]) and a stream for the JSON report,
// and returns the semantic exit code plus any error.
func Run(ctx context.Context, args []string, out io.Writer) (CLIResult, error) {
	inv, err := ParseInvocation(args)
	if err != nil {
		return CLIResult{ExitCode: ExitCode(err)}, err
	}
	return Execute(ctx, inv, out)
}

// Execute maps a canonical Invocation to one attribution run.
//
// Responsibilities:
//   - Load the build snapshot and (optionally) the resolution report.
//   - Build the target graph, transitive closure, and ownership index.
//   - Translate failures to semantic exit codes: bad inputs are
//     ExitInputError, a fatal attribution failure is ExitAttributionFailure.
func Execute(ctx context.Context, inv Invocation, out io.Writer) (CLIResult, error) {
	_ = ctx // index construction is one blocking pass; nothing to cancel

	snapshot, err := LoadSnapshot(inv.SnapshotPath)
	if err != nil {
		return CLIResult{ExitCode: ExitInputError}, err
	}

	var report *resolve.Report
	if inv.ReportPath != "" {
		report, err = resolve.LoadReport(inv.ReportPath)
		if err != nil {
			return CLIResult{ExitCode: ExitInputError}, err
		}
	}

	g, err := graph.New(snapshot.Targets)
	if err != nil {
		return CLIResult{ExitCode: ExitInputError}, err
	}
	closure := graph.ComputeClosure(g)

	archives, err := archive.NewIndex(0)
	if err != nil {
		return CLIResult{ExitCode: ExitInternalError}, err
	}

	ownership, err := attr.BuildOwnership(attr.Config{
		Targets:   snapshot.Targets,
		BuildRoot: inv.BuildRoot,
		Outputs:   snapshot.Outputs,
		Report:    report,
		Symlinks:  snapshot.Symlinks,
		Archives:  archives,
	})
	if err != nil {
		var attrErr *attr.AttributionError
		if errors.As(err, &attrErr) {
			return CLIResult{ExitCode: ExitAttributionFailure}, err
		}
		return CLIResult{ExitCode: ExitInternalError}, err
	}

	doc := Report{
		Ownership: ownershipDoc(ownership),
		Closure:   closureDoc(closure),
		Cycles:    cyclesDoc(closure),
	}

	if inv.ScanPlatform {
		boot := platform.NewIndex(snapshot.JVMProps, archives)
		classfiles, err := boot.Classfiles()
		if err != nil {
			return CLIResult{ExitCode: ExitAttributionFailure}, err
		}
		doc.PlatformClassfiles = sortedKeys(classfiles)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return CLIResult{ExitCode: ExitInternalError}, fmt.Errorf("write report: %w", err)
	}
	return CLIResult{ExitCode: ExitSuccess}, nil
}

func ownershipDoc(o *attr.Ownership) map[string][]string {
	out := make(map[string][]string, o.Len())
	for _, file := range o.Files() {
		owners := o.Owners(file)
		ids := make([]string, 0, len(owners))
		for _, t := range owners {
			ids = append(ids, string(t.ID))
		}
		out[file] = ids
	}
	return out
}

func closureDoc(c *graph.Closure) map[string][]string {
	all := c.All()
	out := make(map[string][]string, len(all))
	for id, deps := range all {
		ids := make([]string, 0, len(deps))
		for _, d := range deps {
			ids = append(ids, string(d))
		}
		out[string(id)] = ids
	}
	return out
}

func cyclesDoc(c *graph.Closure) []string {
	cycles := c.Cycles()
	if len(cycles) == 0 {
		return nil
	}
	out := make([]string, 0, len(cycles))
	for _, e := range cycles {
		out = append(out, fmt.Sprintf("%s -> %s", e.From, e.To))
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
