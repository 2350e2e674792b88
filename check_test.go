// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/filereq

package filereq

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
)

func TestCheckSucceedsViaCompoundOrBranch(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	base := filepath.Join(root, "idx")
	writeFiles(t, WithExtension(base, "ctab"), WithExtension(base, "ssi"), WithExtension(base, "ssi.mphf"))

	req := buildIndexRequirement(t, base)
	if err := req.Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}
}

func TestCheckFailsWhenNoOrBranchSatisfied(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	base := filepath.Join(root, "idx")
	writeFiles(t, WithExtension(base, "ctab"), WithExtension(base, "ssi"))

	req := buildIndexRequirement(t, base)
	err := req.Check()

	var checkErr *CheckError
	if !errors.As(err, &checkErr) {
		t.Fatalf("Check err=%v, want *CheckError", err)
	}

	msg := err.Error()
	for _, want := range []string{"unsatisfied disjunction", "sshash", "ssi.mphf"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message %q does not contain %q", msg, want)
		}
	}
}

func TestCheckReportMessage(t *testing.T) {
	t.Parallel()

	req := buildIndexRequirement(t, "idx")
	err := req.CheckWith(probeSet("idx.ctab", "idx.ssi"))

	want := "required input files were missing or incomplete (" +
		"missing files: idx.sshash, idx.ssi.mphf; " +
		"unsatisfied disjunction(s): (idx.sshash OR (idx.ssi AND idx.ssi.mphf)))"
	if err == nil || err.Error() != want {
		t.Fatalf("CheckWith err=%v\nwant %s", err, want)
	}
}

func TestCheckAndReportsAllFailingChildren(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	for _, p := range []string{"c", "a", "b", "present"} {
		if err := b.RequireFile(p); err != nil {
			t.Fatalf("RequireFile(%s): %v", p, err)
		}
	}

	err := b.Build().CheckWith(probeSet("present"))
	var checkErr *CheckError
	if !errors.As(err, &checkErr) {
		t.Fatalf("CheckWith err=%v, want *CheckError", err)
	}

	assertStrings(t, "MissingFiles", checkErr.MissingFiles, "a", "b", "c")
	if len(checkErr.UnsatisfiedDisjunctions) != 0 {
		t.Fatalf("UnsatisfiedDisjunctions=%v, want none", checkErr.UnsatisfiedDisjunctions)
	}
}

func TestCheckOrShortCircuits(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	err := b.RequireAny(func(g *Group) error {
		for _, p := range []string{"first", "second", "third"} {
			if err := g.RequireFile(p); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		t.Fatalf("RequireAny: %v", err)
	}

	var probed []string
	probe := ProbeFunc(func(path string) (bool, error) {
		probed = append(probed, path)
		return path == "first", nil
	})

	if err := b.Build().CheckWith(probe); err != nil {
		t.Fatalf("CheckWith: %v", err)
	}

	assertStrings(t, "probed", probed, "first")
}

func TestCheckOrDiscardsFailedBranchDiagnostics(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	err := b.RequireAny(func(g *Group) error {
		if err := g.RequireFile("broken"); err != nil {
			return err
		}

		if err := g.RequireFile("gone"); err != nil {
			return err
		}

		return g.RequireFile("ok")
	})
	if err != nil {
		t.Fatalf("RequireAny: %v", err)
	}

	probe := ProbeFunc(func(path string) (bool, error) {
		switch path {
		case "broken":
			return false, errors.New("boom")
		case "ok":
			return true, nil
		default:
			return false, nil
		}
	})

	if err := b.Build().CheckWith(probe); err != nil {
		t.Fatalf("CheckWith: %v, want nil", err)
	}
}

func TestCheckOrExhaustiveFailureMergesBranches(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	if err := b.RequireFile("keep"); err != nil {
		t.Fatalf("RequireFile: %v", err)
	}

	err := b.RequireAny(func(outer *Group) error {
		if err := outer.RequireFile("x"); err != nil {
			return err
		}

		return outer.RequireAny(func(inner *Group) error {
			if err := inner.RequireFile("y"); err != nil {
				return err
			}

			return inner.RequireFile("z")
		})
	})
	if err != nil {
		t.Fatalf("RequireAny: %v", err)
	}

	probe := ProbeFunc(func(path string) (bool, error) {
		switch path {
		case "keep":
			return true, nil
		case "z":
			return false, &fs.PathError{Op: "stat", Path: "z", Err: fs.ErrPermission}
		default:
			return false, nil
		}
	})

	checkErr := asCheckError(t, b.Build().CheckWith(probe))
	assertStrings(t, "MissingFiles", checkErr.MissingFiles, "x", "y")
	assertStrings(t, "PathErrors", checkErr.PathErrors, "z (permission denied)")
	assertStrings(t, "UnsatisfiedDisjunctions", checkErr.UnsatisfiedDisjunctions, "(x OR (y OR z))", "(y OR z)")

	want := "required input files were missing or incomplete (" +
		"missing files: x, y; " +
		"path check errors: z (permission denied); " +
		"unsatisfied disjunction(s): (x OR (y OR z)), (y OR z))"
	if got := checkErr.Error(); got != want {
		t.Fatalf("Error()=%q\nwant %q", got, want)
	}
}

func TestCheckPathErrorWithPlainCause(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	if err := b.RequireFile("q"); err != nil {
		t.Fatalf("RequireFile: %v", err)
	}

	probe := ProbeFunc(func(string) (bool, error) { return false, errors.New("device busy") })
	checkErr := asCheckError(t, b.Build().CheckWith(probe))

	assertStrings(t, "PathErrors", checkErr.PathErrors, "q (device busy)")
	if len(checkErr.MissingFiles) != 0 {
		t.Fatalf("MissingFiles=%v, want none", checkErr.MissingFiles)
	}
}

func TestCheckIsIdempotent(t *testing.T) {
	t.Parallel()

	req := buildIndexRequirement(t, "idx")
	probe := probeSet("idx.ssi")

	first := req.CheckWith(probe)
	second := req.CheckWith(probe)
	if first == nil || second == nil {
		t.Fatalf("CheckWith errs=%v / %v, want both non-nil", first, second)
	}

	if first.Error() != second.Error() {
		t.Fatalf("messages differ:\n%s\n%s", first, second)
	}
}

func TestCheckEmptyRootIsSatisfied(t *testing.T) {
	t.Parallel()

	probe := ProbeFunc(func(string) (bool, error) {
		t.Errorf("probe must not be called")
		return false, nil
	})

	if err := NewBuilder().Build().CheckWith(probe); err != nil {
		t.Fatalf("CheckWith: %v", err)
	}
}

func TestCheckZeroRequirement(t *testing.T) {
	t.Parallel()

	var req Requirement
	if err := req.CheckWith(nil); !errors.Is(err, ErrInvalidRequirement) {
		t.Fatalf("CheckWith err=%v, want ErrInvalidRequirement", err)
	}
}

func TestCheckNilProbeUsesOS(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "present")
	writeFiles(t, path)

	b := NewBuilder()
	if err := b.RequireFile(path); err != nil {
		t.Fatalf("RequireFile: %v", err)
	}

	if err := b.Build().CheckWith(nil); err != nil {
		t.Fatalf("CheckWith(nil): %v", err)
	}
}

func TestCheckConcurrentEvaluations(t *testing.T) {
	t.Parallel()

	req := buildIndexRequirement(t, "idx")
	probe := FSProbe{FS: fstest.MapFS{
		"idx.ctab": &fstest.MapFile{},
		"idx.ssi":  &fstest.MapFile{},
	}}

	want := req.CheckWith(probe).Error()

	var wg sync.WaitGroup
	errs := make([]string, 16)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = req.CheckWith(probe).Error()
		}(i)
	}

	wg.Wait()
	for i := range errs {
		if errs[i] != want {
			t.Fatalf("errs[%d]=%q, want %q", i, errs[i], want)
		}
	}
}

// probeSet returns probe reporting only listed paths as existing.
func probeSet(existing ...string) Probe {
	set := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		set[p] = struct{}{}
	}

	return ProbeFunc(func(path string) (bool, error) {
		_, ok := set[path]
		return ok, nil
	})
}

func asCheckError(t *testing.T, err error) *CheckError {
	t.Helper()

	var checkErr *CheckError
	if !errors.As(err, &checkErr) {
		t.Fatalf("err=%v, want *CheckError", err)
	}

	return checkErr
}

func assertStrings(t *testing.T, name string, got []string, want ...string) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("%s=%v, want %v", name, got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s[%d]=%q, want %q", name, i, got[i], want[i])
		}
	}
}

func writeFiles(t *testing.T, paths ...string) {
	t.Helper()

	for _, path := range paths {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("MkdirAll(%s): %v", filepath.Dir(path), err)
		}

		if err := os.WriteFile(path, nil, 0o600); err != nil {
			t.Fatalf("WriteFile(%s): %v", path, err)
		}
	}
}
