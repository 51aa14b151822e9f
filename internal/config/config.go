package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings holds all alignment tuning parameters. Every threshold the
// engine consults lives here so a single run is fully described by one
// Settings value.
type Settings struct {
	// SilenceGap is the minimum silence between words, in seconds, that
	// closes a voice zone.
	SilenceGap float64 `yaml:"silence_gap"`

	// PrimaryWindow is the search window length in seconds ahead of the
	// cursor for the first matching pass.
	PrimaryWindow float64 `yaml:"primary_window"`

	// FallbackWindow is the expanded window used when the primary pass
	// scores below LowScore.
	FallbackWindow float64 `yaml:"fallback_window"`

	// LowScore triggers the fallback search when the primary match
	// scores below it.
	LowScore float64 `yaml:"low_score"`

	// AcceptScore is the minimum score at which a match advances the
	// cursor and keeps its matched timestamp.
	AcceptScore float64 `yaml:"accept_score"`

	// FallbackScore is the minimum score a fallback match needs to
	// replace a failed primary match. Deliberately higher than
	// AcceptScore so a long-range jump must be much more confident.
	FallbackScore float64 `yaml:"fallback_score"`

	// SimilarityWeight and ConfidenceWeight combine token similarity
	// and average word confidence into the match score.
	SimilarityWeight float64 `yaml:"similarity_weight"`
	ConfidenceWeight float64 `yaml:"confidence_weight"`

	// CursorStep is the offset added past an accepted match when
	// advancing the cursor, and the offset used to place unmatched
	// lines.
	CursorStep float64 `yaml:"cursor_step"`

	// SpanSlackBelow and SpanSlackAbove bound candidate span lengths
	// relative to the lyric token count.
	SpanSlackBelow int `yaml:"span_slack_below"`
	SpanSlackAbove int `yaml:"span_slack_above"`

	// AnchorConfidence is the minimum confidence for a matched line to
	// serve as an interpolation anchor.
	AnchorConfidence float64 `yaml:"anchor_confidence"`

	// MinLineSpacing revokes an anchor whose timestamp is closer than
	// this to the previous line's timestamp.
	MinLineSpacing float64 `yaml:"min_line_spacing"`

	// InterpolatedConfidence is stamped on every interpolated line.
	InterpolatedConfidence float64 `yaml:"interpolated_confidence"`

	// ZoneSnapStep spaces out multiple interpolated lines snapped into
	// the same voice zone.
	ZoneSnapStep float64 `yaml:"zone_snap_step"`
}

// Default returns Settings with the stock thresholds.
func Default() *Settings {
	return &Settings{
		SilenceGap:             2.0,
		PrimaryWindow:          15.0,
		FallbackWindow:         60.0,
		LowScore:               0.4,
		AcceptScore:            0.6,
		FallbackScore:          0.8,
		SimilarityWeight:       0.8,
		ConfidenceWeight:       0.2,
		CursorStep:             0.1,
		SpanSlackBelow:         2,
		SpanSlackAbove:         3,
		AnchorConfidence:       0.75,
		MinLineSpacing:         0.5,
		InterpolatedConfidence: 0.5,
		ZoneSnapStep:           0.1,
	}
}

// Load reads a YAML settings file over the defaults. Fields absent from
// the file keep their default values.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	return cfg, nil
}
