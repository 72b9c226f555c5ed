package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"versecut/internal/media/ffprobe"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "probe <video>",
		Short: "Inspect a video with ffprobe",
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

			result, err := ffprobe.Inspect(cmd.Context(), cfg.FFprobeBinary(), input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(result)
			}

			width, height := result.Dimensions()
			rows := [][]string{
				{"Duration", fmt.Sprintf("%.2fs", result.DurationSeconds())},
				{"Dimensions", fmt.Sprintf("%dx%d", width, height)},
				{"Frame rate", fmt.Sprintf("%.2f fps", result.FrameRate())},
				{"Audio streams", strconv.Itoa(result.AudioStreamCount())},
				{"Size", fmt.Sprintf("%d bytes", result.SizeBytes())},
				{"Container", result.Format.FormatName},
			}
			fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit raw ffprobe JSON")
	return cmd
}
