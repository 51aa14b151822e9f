package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

type songPair struct {
	lyrics     string
	transcript string
}

// RunBatch aligns every lyrics/transcript pair under dir, where a pair
// is <name>.txt next to <name>.json. Runs are independent and stateless
// across songs, so they process concurrently with bounded parallelism.
func RunBatch(ctx context.Context, dir string, maxConcurrent int, opts Options) error {
	pairs, err := findPairs(dir)
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		return fmt.Errorf("no lyrics/transcript pairs found in %s", dir)
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	slog.Info("starting batch alignment",
		"songs", len(pairs),
		"max_concurrent", maxConcurrent)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for _, pair := range pairs {
		pair := pair
		g.Go(func() error {
			o := opts
			o.LyricsPath = pair.lyrics
			o.TranscriptPath = pair.transcript
			o.OutputPath = ""

			if _, err := Run(gctx, o); err != nil {
				return fmt.Errorf("%s: %w", filepath.Base(pair.lyrics), err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("batch alignment complete", "songs", len(pairs))
	return nil
}

func findPairs(dir string) ([]songPair, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read batch directory: %w", err)
	}

	var pairs []songPair
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		base := strings.TrimSuffix(entry.Name(), ".txt")
		transcript := filepath.Join(dir, base+".json")
		if _, err := os.Stat(transcript); err != nil {
			slog.Debug("skipping lyrics without transcript", "file", entry.Name())
			continue
		}
		pairs = append(pairs, songPair{
			lyrics:     filepath.Join(dir, entry.Name()),
			transcript: transcript,
		})
	}
	return pairs, nil
}
