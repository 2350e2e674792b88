// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/filereq

/*
Package filereq validates that required input files are present, expressed as
an AND/OR expression over filesystem paths.

Typical use is a loader for multi-file on-disk formats where several file
layouts are acceptable, e.g. an index that needs "idx.ctab" plus either
"idx.sshash" or both "idx.ssi" and "idx.ssi.mphf".

Basic flow:
  - create builder (`NewBuilder`)
  - add terms (`RequireFile` / `RequireAll` / `RequireAny` / `RequireExtensions`)
  - build immutable expression (`Build`)
  - check it (`Check` / `CheckWith`)

Expressions can also be parsed from text (`ParseRequirement`) or YAML
(`ParseRequirementYAML`), or loaded from files (`LoadRequirementFile`).

Check failures are returned as *CheckError listing missing files, path check
errors, and unsatisfied OR groups, each sorted and duplicate-free.

Existence is answered by a `Probe`:
  - `OSProbe` for the local filesystem
  - `FSProbe` for any fs.FS
  - `RootProbe` for paths scoped under one directory, with optional
    symlink/junction escape hardening (`EnableSymlinkEscapeCheck`)
*/
package filereq
