// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/filereq

package filereq

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRequirementFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	textPath := filepath.Join(dir, "index.req")
	yamlPath := filepath.Join(dir, "index.YML")

	writeRequirementFile(t, textPath, "# index layout\nidx.ctab AND (idx.sshash OR (idx.ssi AND idx.ssi.mphf))\n")
	writeRequirementFile(t, yamlPath, "- idx.ctab\n- any:\n    - idx.sshash\n    - all: [idx.ssi, idx.ssi.mphf]\n")

	want := "(idx.ctab AND (idx.sshash OR (idx.ssi AND idx.ssi.mphf)))"
	for _, path := range []string{textPath, yamlPath} {
		req, err := LoadRequirementFile(path)
		if err != nil {
			t.Fatalf("LoadRequirementFile(%s): %v", path, err)
		}

		if got := req.String(); got != want {
			t.Fatalf("LoadRequirementFile(%s)=%q, want %q", path, got, want)
		}
	}
}

func TestLoadRequirementFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p1 := filepath.Join(dir, "a.req")
	p2 := filepath.Join(dir, "b.yaml")

	writeRequirementFile(t, p1, "x AND y")
	writeRequirementFile(t, p2, "any: [z, w]\n")

	req, err := LoadRequirementFiles(p1, p2)
	if err != nil {
		t.Fatalf("LoadRequirementFiles: %v", err)
	}

	if got := req.String(); got != "(x AND y AND (z OR w))" {
		t.Fatalf("String()=%q, want (x AND y AND (z OR w))", got)
	}
}

func TestLoadRequirementFilesRejectsDuplicatesAcrossFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p1 := filepath.Join(dir, "a.req")
	p2 := filepath.Join(dir, "b.yml")

	writeRequirementFile(t, p1, "shared")
	writeRequirementFile(t, p2, "- other\n- shared\n")

	_, err := LoadRequirementFiles(p1, p2)
	var dup *DuplicateFileError
	if !errors.As(err, &dup) || dup.Path != "shared" {
		t.Fatalf("LoadRequirementFiles err=%v, want DuplicateFile{shared}", err)
	}
}

func TestLoadRequirementFileMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadRequirementFile(filepath.Join(t.TempDir(), "absent.req"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("LoadRequirementFile err=%v, want fs.ErrNotExist", err)
	}
}

func TestLoadRequirementFileInvalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.req")
	writeRequirementFile(t, path, "a OR b AND c")

	_, err := LoadRequirementFile(path)
	if !errors.Is(err, ErrInvalidExpression) {
		t.Fatalf("LoadRequirementFile err=%v, want ErrInvalidExpression", err)
	}
}

func writeRequirementFile(t *testing.T, path string, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}
