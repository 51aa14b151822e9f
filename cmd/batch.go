package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"lyricsync/internal/asr"
	"lyricsync/internal/config"
	"lyricsync/internal/worker"

	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch <directory>",
	Short: "Align every lyrics/transcript pair in a directory",
	Long: `Batch scans a directory for <name>.txt lyrics files with a matching
<name>.json transcript and aligns each pair. Songs are independent, so
pairs are processed concurrently.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

var (
	batchFormat     string
	batchASRFormat  string
	batchConfigPath string
	batchConcurrent int
)

func init() {
	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", "lrc", "output format: lrc, json")
	batchCmd.Flags().StringVar(&batchASRFormat, "asr-format", "auto", "transcript shape: auto, whisper, native, words")
	batchCmd.Flags().StringVar(&batchConfigPath, "config", "", "YAML settings file")
	batchCmd.Flags().IntVarP(&batchConcurrent, "max-concurrent", "j", 4, "max songs aligned at once")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	settings := config.Default()
	if batchConfigPath != "" {
		loaded, err := config.Load(batchConfigPath)
		if err != nil {
			return err
		}
		settings = loaded
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := worker.Options{
		OutputFormat: batchFormat,
		ASRFormat:    asr.Format(batchASRFormat),
		Settings:     settings,
	}

	if err := worker.RunBatch(ctx, args[0], batchConcurrent, opts); err != nil {
		return err
	}

	if !quiet {
		slog.Info("done")
	}
	return nil
}
