// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/filereq

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/woozymasta/filereq"
	"gopkg.in/yaml.v3"
)

// errUnsatisfied marks a completed check whose requirement was not met.
// The report is already printed when it is returned.
var errUnsatisfied = errors.New("requirement not satisfied")

// rootOptions are persistent flags shared by every subcommand.
type rootOptions struct {
	logLevel  string
	logFormat string
	noColor   bool
}

// checkOptions are "check" command flags.
type checkOptions struct {
	root         string
	symlinkCheck bool
}

// fmtOptions are "fmt" command flags.
type fmtOptions struct {
	yaml bool
}

// newRootCmd builds the command tree writing results to out and logs to errOut.
func newRootCmd(out io.Writer, errOut io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "filereq",
		Short:         "Check required input files described as AND/OR expressions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetOut(out)
	cmd.SetErr(errOut)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "text", "log format: text, json")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable coloured output")

	cmd.AddCommand(newCheckCmd(opts), newFmtCmd())
	return cmd
}

// newCheckCmd builds "check" command.
func newCheckCmd(rootOpts *rootOptions) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Check requirement files against the filesystem",
		Long: `Loads requirement files (YAML for .yaml/.yml, expression text otherwise)
into one AND group and checks every term. Exits with status 1 when the
requirement is not satisfied.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(rootOpts.logLevel, rootOpts.logFormat, cmd.ErrOrStderr())
			return runCheck(cmd.OutOrStdout(), logger, rootOpts, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.root, "root", "", "resolve relative paths under this directory and refuse escapes")
	cmd.Flags().BoolVar(&opts.symlinkCheck, "symlink-check", false, "with --root, refuse symlinks resolving outside the root")
	return cmd
}

// runCheck loads, checks and reports requirement files.
func runCheck(out io.Writer, logger *slog.Logger, rootOpts *rootOptions, opts *checkOptions, files []string) error {
	req, err := filereq.LoadRequirementFiles(files...)
	if err != nil {
		return err
	}

	probe, err := newProbe(opts)
	if err != nil {
		return err
	}

	logger.Debug("checking requirement", "files", files, "terms", len(req.Files()), "root", opts.root)

	printer := newReportPrinter(out, rootOpts.noColor)
	err = req.CheckWith(loggingProbe{next: probe, logger: logger})
	if err == nil {
		logger.Info("requirement satisfied", "terms", len(req.Files()))
		printer.printSatisfied(req)
		return nil
	}

	var checkErr *filereq.CheckError
	if !errors.As(err, &checkErr) {
		return err
	}

	logger.Info("requirement not satisfied",
		"missing", len(checkErr.MissingFiles),
		"path_errors", len(checkErr.PathErrors),
		"unsatisfied_disjunctions", len(checkErr.UnsatisfiedDisjunctions),
	)
	printer.printUnsatisfied(checkErr)
	return errUnsatisfied
}

// newProbe selects OS or rooted probe from flags.
func newProbe(opts *checkOptions) (filereq.Probe, error) {
	if opts.root == "" {
		if opts.symlinkCheck {
			return nil, errors.New("--symlink-check requires --root")
		}

		return filereq.OSProbe{}, nil
	}

	probe, err := filereq.NewRootProbe(opts.root, filereq.RootProbeOptions{
		EnableSymlinkEscapeCheck: opts.symlinkCheck,
	})
	if err != nil {
		return nil, fmt.Errorf("root probe: %w", err)
	}

	return probe, nil
}

// newFmtCmd builds "fmt" command.
func newFmtCmd() *cobra.Command {
	opts := &fmtOptions{}

	cmd := &cobra.Command{
		Use:   "fmt FILE...",
		Short: "Print requirement files in canonical expression or YAML form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd.OutOrStdout(), opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.yaml, "yaml", false, "print YAML instead of expression text")
	return cmd
}

// runFmt loads requirement files and prints them back.
func runFmt(out io.Writer, opts *fmtOptions, files []string) error {
	req, err := filereq.LoadRequirementFiles(files...)
	if err != nil {
		return err
	}

	if !opts.yaml {
		_, err = fmt.Fprintln(out, req.Expression())
		return err
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(req); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	return enc.Close()
}
