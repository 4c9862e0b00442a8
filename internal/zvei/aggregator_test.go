package zvei

import "testing"

func TestCleanDropsSecondOfCloseHits(t *testing.T) {
	hits := []ToneHit{
		{Symbol: Symbol1, T: 0.000},
		{Symbol: Symbol1, T: 0.030}, // within 0.05s of predecessor: dropped
		{Symbol: Symbol2, T: 0.200},
	}
	got := clean(hits)
	want := []ToneHit{
		{Symbol: Symbol1, T: 0.000},
		{Symbol: Symbol2, T: 0.200},
	}
	if len(got) != len(want) {
		t.Fatalf("clean() returned %d hits, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("hit %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCleanEmpty(t *testing.T) {
	if got := clean(nil); got != nil {
		t.Errorf("clean(nil) = %+v, want nil", got)
	}
}

func TestAggregatorMinLengthGate(t *testing.T) {
	classifier := newTestClassifier()
	agg := NewAggregator(classifier, testAudioRate, 5)

	seq := []Symbol{Symbol1, Symbol2, Symbol3}
	audio := synthesizeDecimatedAudio(testAudioRate, seq, testToneDurS, 0.01)

	if code, ok := agg.Process(audio); ok {
		t.Errorf("3-tone sequence below min length: expected no emission, got %q", code)
	}
}

func TestAggregatorDedupAcrossBlocks(t *testing.T) {
	classifier := newTestClassifier()
	agg := NewAggregator(classifier, testAudioRate, 5)

	seq := []Symbol{Symbol1, Symbol2, Symbol3, Symbol4, Symbol5}
	audio := synthesizeDecimatedAudio(testAudioRate, seq, testToneDurS, 0.01)

	code, ok := agg.Process(audio)
	if !ok || code != "12345" {
		t.Fatalf("first Process: got (%q, %v), want (\"12345\", true)", code, ok)
	}

	code, ok = agg.Process(audio)
	if ok {
		t.Errorf("second Process on identical audio: expected no emission, got %q", code)
	}
}
