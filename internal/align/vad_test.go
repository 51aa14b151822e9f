package align

import "testing"

func TestInferVoiceZones_Empty(t *testing.T) {
	if zones := InferVoiceZones(nil, 2.0); len(zones) != 0 {
		t.Errorf("expected no zones, got %d", len(zones))
	}
}

func TestInferVoiceZones_SplitsOnGap(t *testing.T) {
	words := []CleanWord{
		{Text: "a", Start: 0, End: 1},
		{Text: "b", Start: 1.5, End: 2},
		{Text: "c", Start: 10, End: 11},
	}
	zones := InferVoiceZones(words, 2.0)

	if len(zones) != 2 {
		t.Fatalf("expected 2 zones, got %d: %+v", len(zones), zones)
	}
	if zones[0].Start != 0 || zones[0].End != 2 {
		t.Errorf("zone 0 = %+v, want [0,2]", zones[0])
	}
	if zones[1].Start != 10 || zones[1].End != 11 {
		t.Errorf("zone 1 = %+v, want [10,11]", zones[1])
	}
}

func TestInferVoiceZones_SingleZone(t *testing.T) {
	words := []CleanWord{
		{Text: "a", Start: 0, End: 1},
		{Text: "b", Start: 2.5, End: 3},
	}
	zones := InferVoiceZones(words, 2.0)
	if len(zones) != 1 {
		t.Fatalf("expected 1 zone, got %d", len(zones))
	}
	if zones[0].Start != 0 || zones[0].End != 3 {
		t.Errorf("zone = %+v, want [0,3]", zones[0])
	}
}

func TestInferVoiceZones_EndNeverShrinks(t *testing.T) {
	// Overlapping ASR words: a long word followed by a short one inside it.
	words := []CleanWord{
		{Text: "long", Start: 0, End: 5},
		{Text: "short", Start: 1, End: 2},
	}
	zones := InferVoiceZones(words, 2.0)
	if len(zones) != 1 || zones[0].End != 5 {
		t.Errorf("zone end must stay 5, got %+v", zones)
	}
}

func TestInferVoiceZones_CoversEveryWord(t *testing.T) {
	words := []CleanWord{
		{Start: 0, End: 0.5}, {Start: 3, End: 4}, {Start: 4.1, End: 5},
		{Start: 30, End: 31},
	}
	zones := InferVoiceZones(words, 2.0)
	for _, w := range words {
		if !zoneContaining(zones, w.Start) || !zoneContaining(zones, w.End) {
			t.Errorf("word [%v,%v] not covered by zones %+v", w.Start, w.End, zones)
		}
	}
}
