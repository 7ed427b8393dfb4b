package verification

import "math"

// Buffer accumulates challenge outcomes for one session, in challenge
// order. One buffer belongs to one session and is driven by a single
// logical flow, so it carries no locking of its own.
type Buffer struct {
	records []ChallengeRecord
}

func NewBuffer() *Buffer {
	return &Buffer{records: []ChallengeRecord{}}
}

// RecordChallenge appends a challenge outcome. Timing fields are
// fail-soft: negative or non-finite values become 0 rather than an
// error, since malformed capture data must never abort a verification.
func (b *Buffer) RecordChallenge(challengeType ChallengeType, reactionMS, hesitationMS float64, accurate bool, samples []MouseSample) {
	b.records = append(b.records, ChallengeRecord{
		Type:             challengeType,
		ReactionTimeMS:   sanitizeTime(reactionMS),
		HesitationTimeMS: sanitizeTime(hesitationMS),
		Accurate:         accurate,
		MouseSamples:     samples,
	})
}

// Records returns a copy of the buffered challenge outcomes in order.
func (b *Buffer) Records() []ChallengeRecord {
	out := make([]ChallengeRecord, len(b.records))
	copy(out, b.records)
	return out
}

func (b *Buffer) Len() int {
	return len(b.records)
}

func sanitizeTime(ms float64) float64 {
	if ms < 0 || math.IsNaN(ms) || math.IsInf(ms, 0) {
		return 0
	}
	return ms
}
