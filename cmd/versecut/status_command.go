package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"versecut/internal/preflight"
	"versecut/internal/queue"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check dependencies, directories, and the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			printSection(out, "Configuration", colorize)
			kind := statusOK
			if !ctx.configExists {
				kind = statusWarn
			}
			fmt.Fprintln(out, renderStatusLine("Config file", kind, describeConfigPath(ctx), colorize))
			fmt.Fprintln(out)

			printSection(out, "Dependencies", colorize)
			failures := 0
			for _, dep := range preflight.CheckSystemDeps(cmd.Context(), cfg) {
				kind := statusOK
				detail := dep.Command
				if dep.Version != "" {
					detail = fmt.Sprintf("%s (%s)", dep.Command, dep.Version)
				}
				if !dep.Available {
					detail = dep.Detail
					if dep.Optional {
						kind = statusWarn
					} else {
						kind = statusError
						failures++
					}
				}
				fmt.Fprintln(out, renderStatusLine(dep.Name, kind, detail, colorize))
			}
			fmt.Fprintln(out)

			printSection(out, "Directories", colorize)
			for _, result := range preflight.CheckDirectories(cfg) {
				kind := statusOK
				if !result.Passed {
					kind = statusError
					failures++
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}
			fmt.Fprintln(out)

			printSection(out, "Queue", colorize)
			if err := ctx.withStore(func(store *queue.Store) error {
				stats, err := store.Summary(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(out, renderStatusLine("Database", statusOK, store.Path(), colorize))
				summary := fmt.Sprintf("%d total: %d pending, %d rendering, %d completed, %d failed, %d review",
					stats.Total, stats.Pending, stats.Rendering, stats.Completed, stats.Failed, stats.Review)
				kind := statusInfo
				if stats.Failed > 0 || stats.Review > 0 {
					kind = statusWarn
				}
				fmt.Fprintln(out, renderStatusLine("Jobs", kind, summary, colorize))
				return nil
			}); err != nil {
				fmt.Fprintln(out, renderStatusLine("Database", statusError, err.Error(), colorize))
				failures++
			}

			if failures > 0 {
				return fmt.Errorf("%d status checks failed", failures)
			}
			return nil
		},
	}
}

func printSection(out io.Writer, title string, colorize bool) {
	for _, line := range renderSectionHeader(title, colorize) {
		fmt.Fprintln(out, line)
	}
}
