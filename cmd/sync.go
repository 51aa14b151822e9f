package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"lyricsync/internal/asr"
	"lyricsync/internal/config"
	"lyricsync/internal/worker"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync <lyrics.txt> <transcript.json>",
	Short: "Align one song's lyrics to its ASR transcript",
	Long: `Sync assigns a playback timestamp to every line of a plain lyrics file by
fuzzy-matching the lines against a Whisper-style transcript JSON, then writes
the result as an LRC or JSON file.`,
	Args: cobra.ExactArgs(2),
	RunE: runSync,
}

var (
	output       string
	outputFormat string
	asrFormat    string
	configPath   string
	showSummary  bool

	// Alignment tuning flags.
	silenceGap     float64
	primaryWindow  float64
	fallbackWindow float64
	acceptScore    float64
	anchorConf     float64
	minSpacing     float64
)

func init() {
	defaults := config.Default()

	syncCmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: <lyrics>.lrc)")
	syncCmd.Flags().StringVarP(&outputFormat, "format", "f", "lrc", "output format: lrc, json")
	syncCmd.Flags().StringVar(&asrFormat, "asr-format", "auto", "transcript shape: auto, whisper, native, words")
	syncCmd.Flags().StringVar(&configPath, "config", "", "YAML settings file")
	syncCmd.Flags().BoolVar(&showSummary, "summary", false, "print an alignment summary table")

	syncCmd.Flags().Float64Var(&silenceGap, "silence-gap", defaults.SilenceGap, "silence gap closing a voice zone in seconds")
	syncCmd.Flags().Float64Var(&primaryWindow, "primary-window", defaults.PrimaryWindow, "primary search window in seconds")
	syncCmd.Flags().Float64Var(&fallbackWindow, "fallback-window", defaults.FallbackWindow, "fallback search window in seconds")
	syncCmd.Flags().Float64Var(&acceptScore, "accept-score", defaults.AcceptScore, "minimum score to accept a match")
	syncCmd.Flags().Float64Var(&anchorConf, "anchor-confidence", defaults.AnchorConfidence, "minimum confidence for an interpolation anchor")
	syncCmd.Flags().Float64Var(&minSpacing, "min-line-spacing", defaults.MinLineSpacing, "minimum seconds between consecutive line starts")

	rootCmd.AddCommand(syncCmd)
}

// loadSettings resolves the config file and tuning flags; explicitly
// set flags win over file values.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	settings := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		settings = loaded
	}

	if cmd.Flags().Changed("silence-gap") {
		settings.SilenceGap = silenceGap
	}
	if cmd.Flags().Changed("primary-window") {
		settings.PrimaryWindow = primaryWindow
	}
	if cmd.Flags().Changed("fallback-window") {
		settings.FallbackWindow = fallbackWindow
	}
	if cmd.Flags().Changed("accept-score") {
		settings.AcceptScore = acceptScore
	}
	if cmd.Flags().Changed("anchor-confidence") {
		settings.AnchorConfidence = anchorConf
	}
	if cmd.Flags().Changed("min-line-spacing") {
		settings.MinLineSpacing = minSpacing
	}

	return settings, nil
}

func runSync(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := worker.Options{
		LyricsPath:     args[0],
		TranscriptPath: args[1],
		OutputPath:     output,
		OutputFormat:   outputFormat,
		ASRFormat:      asr.Format(asrFormat),
		Settings:       settings,
	}

	aligned, err := worker.Run(ctx, opts)
	if err != nil {
		return err
	}

	if showSummary {
		fmt.Fprintln(os.Stdout, summaryTable(aligned, settings))
	}

	if !quiet {
		slog.Info("done")
	}
	return nil
}
