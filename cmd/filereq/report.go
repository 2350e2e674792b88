// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/filereq

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/woozymasta/filereq"
)

// reportPrinter writes check results, colourised on terminals.
type reportPrinter struct {
	w       io.Writer
	ok      *color.Color
	fail    *color.Color
	heading *color.Color
}

// newReportPrinter creates printer for w; colour is used only when w is a
// terminal and noColor is false.
func newReportPrinter(w io.Writer, noColor bool) *reportPrinter {
	p := &reportPrinter{
		w:       w,
		ok:      color.New(color.FgGreen, color.Bold),
		fail:    color.New(color.FgRed, color.Bold),
		heading: color.New(color.FgYellow),
	}

	enable := !noColor && isTerminal(w)
	for _, c := range []*color.Color{p.ok, p.fail, p.heading} {
		if enable {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

// printSatisfied writes the success line.
func (p *reportPrinter) printSatisfied(req filereq.Requirement) {
	p.ok.Fprint(p.w, "ok")
	fmt.Fprintf(p.w, " %s\n", req.String())
}

// printUnsatisfied writes one line per report section.
func (p *reportPrinter) printUnsatisfied(checkErr *filereq.CheckError) {
	p.fail.Fprint(p.w, "unsatisfied")
	fmt.Fprintln(p.w, ": required input files were missing or incomplete")

	printSection(p, "missing files", checkErr.MissingFiles)
	printSection(p, "path check errors", checkErr.PathErrors)
	printSection(p, "unsatisfied disjunction(s)", checkErr.UnsatisfiedDisjunctions)
}

// printSection writes heading and indented entries, skipping empty sections.
func printSection(p *reportPrinter, heading string, entries []string) {
	if len(entries) == 0 {
		return
	}

	fmt.Fprint(p.w, "  ")
	p.heading.Fprint(p.w, heading)
	fmt.Fprintln(p.w, ":")
	for _, entry := range entries {
		fmt.Fprintf(p.w, "    %s\n", entry)
	}
}

// isTerminal reports whether w is a terminal file.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
