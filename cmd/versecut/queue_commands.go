package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"versecut/internal/batch"
	"versecut/internal/queue"
	"versecut/internal/render"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Manage the batch render queue",
	}

	queueCmd.AddCommand(newQueueAddCommand(ctx))
	queueCmd.AddCommand(newQueueListCommand(ctx))
	queueCmd.AddCommand(newQueueRunCommand(ctx))
	queueCmd.AddCommand(newQueueRetryCommand(ctx))
	queueCmd.AddCommand(newQueueRemoveCommand(ctx))
	queueCmd.AddCommand(newQueueClearCommand(ctx))
	queueCmd.AddCommand(newQueueStatsCommand(ctx))

	return queueCmd
}

func newQueueStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show job counts per status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *queue.Store) error {
				stats, err := store.Summary(cmd.Context())
				if err != nil {
					return err
				}
				rows := [][]string{
					{"Pending", strconv.Itoa(stats.Pending)},
					{"Rendering", strconv.Itoa(stats.Rendering)},
					{"Completed", strconv.Itoa(stats.Completed)},
					{"Failed", strconv.Itoa(stats.Failed)},
					{"Review", strconv.Itoa(stats.Review)},
					{"Total", strconv.Itoa(stats.Total)},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Status", "Jobs"},
					rows,
					[]columnAlignment{alignLeft, alignRight},
				))
				return nil
			})
		},
	}
}

func newQueueAddCommand(ctx *commandContext) *cobra.Command {
	var item queue.Item

	cmd := &cobra.Command{
		Use:   "add <video>",
		Short: "Queue a render job for a later run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			input, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			if _, err := os.Stat(input); err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("video does not exist: %s", input)
				}
				return fmt.Errorf("inspect video: %w", err)
			}
			item.InputPath = input
			if item.OutputPath == "" {
				item.OutputPath = defaultOutputPath(cfg, input)
			}

			return ctx.withStore(func(store *queue.Store) error {
				stored, err := store.Add(cmd.Context(), &item)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Queued render job #%d (%s)\n", stored.ID, filepath.Base(input))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&item.OutputPath, "output", "o", "", "Output video path")
	cmd.Flags().StringVarP(&item.OverlayText, "text", "t", "", "Overlay text to display")
	cmd.Flags().Float64VarP(&item.StartSeconds, "start-time", "s", 0, "Overlay start time in seconds")
	cmd.Flags().Float64VarP(&item.DurationSeconds, "duration", "d", 0, "Overlay duration in seconds (0 runs to the end)")
	cmd.Flags().StringVarP(&item.QuoteFile, "quote-file", "q", "", "File with one quote per line")
	cmd.Flags().StringVar(&item.Theme, "theme", "", "Distribute catalog quotes matching this theme")
	cmd.Flags().IntVar(&item.RandomCount, "random", 0, "Distribute this many random catalog quotes")
	cmd.Flags().StringVar(&item.IntroText, "intro", "", "Intro title card text")
	cmd.Flags().StringVar(&item.OutroText, "outro", "", "Outro title card text")

	return cmd
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	var statusFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List queued render jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter []queue.Status
			if trimmed := strings.TrimSpace(statusFlag); trimmed != "" {
				status, ok := queue.ParseStatus(trimmed)
				if !ok {
					return fmt.Errorf("unknown status %q", trimmed)
				}
				filter = append(filter, status)
			}

			return ctx.withStore(func(store *queue.Store) error {
				items, err := store.List(cmd.Context(), filter...)
				if err != nil {
					return err
				}
				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty.")
					return nil
				}

				rows := make([][]string, 0, len(items))
				for _, item := range items {
					rows = append(rows, []string{
						strconv.FormatInt(item.ID, 10),
						filepath.Base(item.InputPath),
						string(item.Status),
						jobProgress(item),
						jobSource(item),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Input", "Status", "Progress", "Quotes"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&statusFlag, "status", "", "Only show jobs with this status")
	return cmd
}

func jobProgress(item *queue.Item) string {
	if item.ErrorMessage != "" {
		return item.ErrorMessage
	}
	if item.ProgressStage == "" {
		return "-"
	}
	return fmt.Sprintf("%s (%.0f%%)", item.ProgressStage, item.ProgressPercent)
}

func jobSource(item *queue.Item) string {
	switch {
	case item.QuoteFile != "":
		return "file: " + filepath.Base(item.QuoteFile)
	case item.Theme != "":
		return "theme: " + item.Theme
	case item.RandomCount > 0:
		return fmt.Sprintf("random: %d", item.RandomCount)
	case item.OverlayText != "":
		return "text"
	default:
		return "-"
	}
}

func newQueueRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Render every pending job in the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			return ctx.withStore(func(store *queue.Store) error {
				runner := batch.NewRunner(cfg, store, render.New(cfg, logger), logger)
				report, err := runner.Run(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(),
					"Run %s finished: %d processed, %d completed, %d failed, %d for review\n",
					report.RunID, report.Processed, report.Completed, report.Failed, report.Review)
				return nil
			})
		},
	}
}

func newQueueRetryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "retry",
		Short: "Return failed and review jobs to pending",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *queue.Store) error {
				count, err := store.RetryFailed(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Returned %d jobs to pending\n", count)
				return nil
			})
		},
	}
}

func newQueueRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a job from the queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid job id %q", args[0])
			}
			return ctx.withStore(func(store *queue.Store) error {
				if err := store.Remove(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed job #%d\n", id)
				return nil
			})
		},
	}
}

func newQueueClearCommand(ctx *commandContext) *cobra.Command {
	var completedOnly bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete jobs from the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *queue.Store) error {
				var (
					count int64
					err   error
				)
				if completedOnly {
					count, err = store.ClearCompleted(cmd.Context())
				} else {
					count, err = store.Clear(cmd.Context())
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d jobs\n", count)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&completedOnly, "completed", false, "Only delete completed jobs")
	return cmd
}
