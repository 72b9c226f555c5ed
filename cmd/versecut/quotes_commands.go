package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"versecut/internal/quotes"
)

func newQuotesCommand(ctx *commandContext) *cobra.Command {
	quotesCmd := &cobra.Command{
		Use:         "quotes",
		Short:       "Browse the built-in quote catalog",
		Annotations: map[string]string{"skipConfigLoad": "true"},
	}

	quotesCmd.AddCommand(newQuotesListCommand())
	quotesCmd.AddCommand(newQuotesThemesCommand())
	quotesCmd.AddCommand(newQuotesRandomCommand())
	quotesCmd.AddCommand(newQuotesExportCommand())

	return quotesCmd
}

func newQuotesListCommand() *cobra.Command {
	var themeFlag string
	var beatitudes bool
	var sayings bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog quotes, optionally filtered by theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			var list []quotes.Quote
			switch {
			case beatitudes:
				list = quotes.Beatitudes()
			case sayings:
				list = quotes.Sayings()
			case strings.TrimSpace(themeFlag) != "":
				list = quotes.ByTheme(themeFlag)
				if len(list) == 0 {
					return fmt.Errorf("no quotes match theme %q", themeFlag)
				}
			default:
				list = quotes.All()
			}

			rows := make([][]string, 0, len(list))
			for i, q := range list {
				rows = append(rows, []string{strconv.Itoa(i + 1), q.Text, q.Reference})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"#", "Quote", "Reference"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&themeFlag, "theme", "", "Only show quotes matching this theme")
	cmd.Flags().BoolVar(&beatitudes, "beatitudes", false, "Only show the Beatitudes")
	cmd.Flags().BoolVar(&sayings, "sayings", false, "Only show the \"I am\" sayings")
	cmd.MarkFlagsMutuallyExclusive("theme", "beatitudes", "sayings")

	return cmd
}

func newQuotesThemesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List curated themes with match counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			caser := cases.Title(language.English)
			counts := quotes.Themes()
			rows := make([][]string, 0, len(counts))
			for _, entry := range counts {
				rows = append(rows, []string{caser.String(entry.Theme), strconv.Itoa(entry.Count)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Theme", "Quotes"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}
}

func newQuotesRandomCommand() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Print random quotes from the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("count must be at least 1")
			}
			for _, q := range quotes.Sample(count) {
				fmt.Fprintln(cmd.OutOrStdout(), q.String())
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of quotes to print")
	return cmd
}

func newQuotesExportCommand() *cobra.Command {
	var themeFlag string
	var beatitudes bool
	var sayings bool

	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Write catalog quotes to a quote file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var list []quotes.Quote
			switch {
			case beatitudes:
				list = quotes.Beatitudes()
			case sayings:
				list = quotes.Sayings()
			case strings.TrimSpace(themeFlag) != "":
				list = quotes.ByTheme(themeFlag)
				if len(list) == 0 {
					return fmt.Errorf("no quotes match theme %q", themeFlag)
				}
			default:
				list = quotes.All()
			}
			if err := quotes.WriteFile(args[0], list); err != nil {
				return fmt.Errorf("write quote file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d quotes to %s\n", len(list), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&themeFlag, "theme", "", "Only export quotes matching this theme")
	cmd.Flags().BoolVar(&beatitudes, "beatitudes", false, "Only export the Beatitudes")
	cmd.Flags().BoolVar(&sayings, "sayings", false, "Only export the \"I am\" sayings")
	cmd.MarkFlagsMutuallyExclusive("theme", "beatitudes", "sayings")
	return cmd
}
