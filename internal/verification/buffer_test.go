package verification

import (
	"math"
	"testing"
)

func TestBufferRecordsInOrder(t *testing.T) {
	b := NewBuffer()
	b.RecordChallenge(ChallengeClickTarget, 1500, 400, true, nil)
	b.RecordChallenge(ChallengeSequence, 1800, 500, false, nil)
	b.RecordChallenge(ChallengeTimedReaction, 1600, 450, true, nil)

	records := b.Records()
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	wantTypes := []ChallengeType{ChallengeClickTarget, ChallengeSequence, ChallengeTimedReaction}
	for i, r := range records {
		if r.Type != wantTypes[i] {
			t.Errorf("record %d type = %s, want %s", i, r.Type, wantTypes[i])
		}
	}
}

func TestBufferRecordsIsACopy(t *testing.T) {
	b := NewBuffer()
	b.RecordChallenge(ChallengeClickTarget, 1500, 400, true, nil)

	records := b.Records()
	records[0].ReactionTimeMS = 9999

	if got := b.Records()[0].ReactionTimeMS; got != 1500 {
		t.Errorf("buffer mutated through returned slice: %f", got)
	}
}

func TestBufferSanitizesMalformedTiming(t *testing.T) {
	tests := []struct {
		name       string
		reaction   float64
		hesitation float64
	}{
		{"negative values", -100, -50},
		{"NaN values", math.NaN(), math.NaN()},
		{"infinite values", math.Inf(1), math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer()
			b.RecordChallenge(ChallengeClickTarget, tt.reaction, tt.hesitation, true, nil)

			r := b.Records()[0]
			if r.ReactionTimeMS != 0 {
				t.Errorf("reaction time = %f, want 0", r.ReactionTimeMS)
			}
			if r.HesitationTimeMS != 0 {
				t.Errorf("hesitation time = %f, want 0", r.HesitationTimeMS)
			}
		})
	}
}
