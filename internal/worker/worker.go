package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"lyricsync/internal/align"
	"lyricsync/internal/asr"
	"lyricsync/internal/config"
	"lyricsync/internal/lyrics"
)

// Options configures one alignment run.
type Options struct {
	LyricsPath     string
	TranscriptPath string
	OutputPath     string
	OutputFormat   string // "lrc" or "json"
	ASRFormat      asr.Format
	Settings       *config.Settings
}

// Run aligns one song's lyrics against its transcript and writes the
// synced output. The aligned lines are returned so callers can render
// summaries.
func Run(ctx context.Context, opts Options) ([]align.AlignedLine, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	lyricData, err := os.ReadFile(opts.LyricsPath)
	if err != nil {
		return nil, fmt.Errorf("read lyrics: %w", err)
	}
	lines := lyrics.ParseLines(string(lyricData))
	if len(lines) == 0 {
		return nil, fmt.Errorf("no lyric lines in %s", filepath.Base(opts.LyricsPath))
	}

	transcriptData, err := os.ReadFile(opts.TranscriptPath)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	segments, err := asr.Decode(transcriptData, opts.ASRFormat)
	if err != nil {
		return nil, err
	}

	slog.Info("aligning",
		"song", filepath.Base(opts.LyricsPath),
		"lines", len(lines),
		"segments", len(segments))

	aligned := align.New(opts.Settings).Align(lines, segments)

	outPath := opts.OutputPath
	if outPath == "" {
		outPath = defaultOutputPath(opts.LyricsPath, opts.OutputFormat)
	}

	var content []byte
	switch opts.OutputFormat {
	case "", "lrc":
		content = []byte(lyrics.FormatLRC(aligned))
	case "json":
		content, err = json.MarshalIndent(aligned, "", "    ")
		if err != nil {
			return nil, fmt.Errorf("encode output: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown output format %q", opts.OutputFormat)
	}

	if err := os.WriteFile(outPath, content, 0644); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}

	slog.Info("synced lyrics saved", "path", outPath)
	return aligned, nil
}

func defaultOutputPath(lyricsPath, format string) string {
	base := strings.TrimSuffix(lyricsPath, filepath.Ext(lyricsPath))
	if format == "json" {
		return base + ".synced.json"
	}
	return base + ".lrc"
}
