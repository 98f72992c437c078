package cli

import (
	"path/filepath"
	"testing"
)

func TestParseInvocation_ResolvesRelativePathsUnderBuildRoot(t *testing.T) {
	inv, err := ParseInvocation([]string{
		"--buildroot", "/repo",
		"--snapshot", "out/snapshot.yaml",
		"--report", "out/report.yaml",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if inv.SnapshotPath != filepath.Join("/repo", "out/snapshot.yaml") {
		t.Fatalf("unexpected snapshot path: %q", inv.SnapshotPath)
	}
	if inv.ReportPath != filepath.Join("/repo", "out/report.yaml") {
		t.Fatalf("unexpected report path: %q", inv.ReportPath)
	}
}

func TestParseInvocation_AbsolutePathsAcceptedAsIs(t *testing.T) {
	inv, err := ParseInvocation([]string{
		"--buildroot", "/repo",
		"--snapshot", "/elsewhere/snapshot.yaml",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if inv.SnapshotPath != "/elsewhere/snapshot.yaml" {
		t.Fatalf("unexpected snapshot path: %q", inv.SnapshotPath)
	}
	if inv.ReportPath != "" {
		t.Fatalf("report must stay empty when not given, got %q", inv.ReportPath)
	}
}

func TestParseInvocation_InvalidInvocations(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"missing buildroot", []string{"--snapshot", "s.yaml"}},
		{"relative buildroot", []string{"--buildroot", "repo", "--snapshot", "s.yaml"}},
		{"missing snapshot", []string{"--buildroot", "/repo"}},
		{"unknown flag", []string{"--buildroot", "/repo", "--snapshot", "s.yaml", "--bogus"}},
		{"positional args", []string{"--buildroot", "/repo", "--snapshot", "s.yaml", "extra"}},
	}
	for _, tc := range cases {
		_, err := ParseInvocation(tc.args)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if got := ExitCode(err); got != ExitInvalidInvocation {
			t.Fatalf("%s: expected exit %d, got %d", tc.name, ExitInvalidInvocation, got)
		}
	}
}

func TestExitCode_NilAndUnknownErrors(t *testing.T) {
	if got := ExitCode(nil); got != ExitSuccess {
		t.Fatalf("ExitCode(nil) = %d", got)
	}
	if got := ExitCode(errFake); got != ExitInternalError {
		t.Fatalf("ExitCode(unknown) = %d", got)
	}
}

var errFake = &fakeError{}

type fakeError struct{}

func (*fakeError) Error() string { return "fake" }
