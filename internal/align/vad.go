package align

// InferVoiceZones merges time-ordered words into contiguous voice zones.
// A zone stays open while the next word starts less than gap seconds
// after the running zone end; otherwise the zone closes and a new one
// opens at that word. Empty input yields no zones.
func InferVoiceZones(words []CleanWord, gap float64) []VoiceZone {
	if len(words) == 0 {
		return nil
	}

	var zones []VoiceZone
	current := VoiceZone{Start: words[0].Start, End: words[0].End}

	for _, w := range words[1:] {
		if w.Start-current.End < gap {
			if w.End > current.End {
				current.End = w.End
			}
			continue
		}
		zones = append(zones, current)
		current = VoiceZone{Start: w.Start, End: w.End}
	}

	return append(zones, current)
}

// zoneContaining reports whether t falls inside any zone.
func zoneContaining(zones []VoiceZone, t float64) bool {
	for _, z := range zones {
		if t >= z.Start && t <= z.End {
			return true
		}
	}
	return false
}

// zoneAfter returns the first zone starting strictly after t.
func zoneAfter(zones []VoiceZone, t float64) (VoiceZone, bool) {
	for _, z := range zones {
		if z.Start > t {
			return z, true
		}
	}
	return VoiceZone{}, false
}
