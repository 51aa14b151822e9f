package align

import "lyricsync/internal/config"

// Interpolate rewrites the timestamps of non-anchor lines in place.
// Lines with confidence at or above AnchorConfidence, plus the first
// and last lines, act as anchors; an anchor is revoked when its
// timestamp lands within MinLineSpacing of the previous line's, since
// two lines cannot plausibly start that close together. Every line
// between two surviving anchors gets a linearly interpolated timestamp,
// snapped forward into the next voice zone when the naive value falls
// in silence, and its confidence overwritten with
// InterpolatedConfidence. Negative timestamps are clamped to zero at
// the end. Strict monotonicity across the whole list is not separately
// enforced beyond the anchor spacing rule.
func Interpolate(lines []AlignedLine, zones []VoiceZone, cfg *config.Settings) {
	if cfg == nil {
		cfg = config.Default()
	}
	if len(lines) == 0 {
		return
	}

	anchors := classifyAnchors(lines, cfg)

	for k := 0; k+1 < len(anchors); k++ {
		prev, next := anchors[k], anchors[k+1]
		indexGap := next - prev
		if indexGap <= 1 {
			continue
		}

		step := (lines[next].Timestamp - lines[prev].Timestamp) / float64(indexGap)
		for j := 1; j < indexGap; j++ {
			ts := lines[prev].Timestamp + step*float64(j)

			if !zoneContaining(zones, ts) {
				// The j-scaled offset keeps several lines snapped into
				// the same zone from colliding at one instant. When no
				// later zone exists the naive timestamp stands.
				if z, ok := zoneAfter(zones, ts); ok {
					ts = z.Start + cfg.ZoneSnapStep*float64(j)
				}
			}

			lines[prev+j].Timestamp = ts
			lines[prev+j].Confidence = cfg.InterpolatedConfidence
		}
	}

	for i := range lines {
		if lines[i].Timestamp < 0 {
			lines[i].Timestamp = 0
		}
	}
}

// classifyAnchors returns the indices of lines trusted as interpolation
// boundaries, in order.
func classifyAnchors(lines []AlignedLine, cfg *config.Settings) []int {
	var anchors []int
	for i, line := range lines {
		forced := i == 0 || i == len(lines)-1
		if !forced && line.Confidence < cfg.AnchorConfidence {
			continue
		}
		// Physics check: a match starting almost on top of the previous
		// line is more likely a matcher glitch than a real event.
		if i > 0 && line.Timestamp-lines[i-1].Timestamp < cfg.MinLineSpacing {
			continue
		}
		anchors = append(anchors, i)
	}
	return anchors
}
