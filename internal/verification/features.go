package verification

import "math"

// The seven behavioral features, in the order the training pipeline
// exports them.
const (
	FeatureAvgReactionTime        = "avg_reaction_time"
	FeatureReactionTimeVariance   = "reaction_time_variance"
	FeatureTaskAccuracy           = "task_accuracy"
	FeatureHesitationTime         = "hesitation_time"
	FeatureCursorPathLength       = "cursor_path_length"
	FeatureCursorDirectionChanges = "cursor_direction_changes"
	FeatureSpeedVariance          = "speed_variance"
)

var FeatureNames = []string{
	FeatureAvgReactionTime,
	FeatureReactionTimeVariance,
	FeatureTaskAccuracy,
	FeatureHesitationTime,
	FeatureCursorPathLength,
	FeatureCursorDirectionChanges,
	FeatureSpeedVariance,
}

// directionChangeThreshold is the minimum angle difference, in
// radians, between consecutive movement segments that counts as a
// direction change.
const directionChangeThreshold = math.Pi / 4

// FeatureVector is the fixed 7-dimensional numeric summary of one
// session's behavioral signals. All values are finite; aggregates over
// empty inputs are zero.
type FeatureVector struct {
	AvgReactionTime        float64 `json:"avg_reaction_time"`
	ReactionTimeVariance   float64 `json:"reaction_time_variance"`
	TaskAccuracy           float64 `json:"task_accuracy"`
	HesitationTime         float64 `json:"hesitation_time"`
	CursorPathLength       float64 `json:"cursor_path_length"`
	CursorDirectionChanges float64 `json:"cursor_direction_changes"`
	SpeedVariance          float64 `json:"speed_variance"`
}

// ValueOf resolves a feature by its trained-model name. The second
// return is false for names the extractor does not produce.
func (fv FeatureVector) ValueOf(name string) (float64, bool) {
	switch name {
	case FeatureAvgReactionTime:
		return fv.AvgReactionTime, true
	case FeatureReactionTimeVariance:
		return fv.ReactionTimeVariance, true
	case FeatureTaskAccuracy:
		return fv.TaskAccuracy, true
	case FeatureHesitationTime:
		return fv.HesitationTime, true
	case FeatureCursorPathLength:
		return fv.CursorPathLength, true
	case FeatureCursorDirectionChanges:
		return fv.CursorDirectionChanges, true
	case FeatureSpeedVariance:
		return fv.SpeedVariance, true
	}
	return 0, false
}

// Map returns the vector keyed by feature name.
func (fv FeatureVector) Map() map[string]float64 {
	out := make(map[string]float64, len(FeatureNames))
	for _, name := range FeatureNames {
		v, _ := fv.ValueOf(name)
		out[name] = v
	}
	return out
}

// Extract reduces a session's challenge records to the feature vector.
// It is pure and deterministic, and returns the zero vector for zero
// records. Cursor features are computed from the last challenge's
// movement trace; traces are not accumulated across challenges.
func Extract(records []ChallengeRecord) FeatureVector {
	var fv FeatureVector
	if len(records) == 0 {
		return fv
	}

	n := float64(len(records))
	var sumReaction, sumHesitation, accurate float64
	for _, r := range records {
		sumReaction += r.ReactionTimeMS
		sumHesitation += r.HesitationTimeMS
		if r.Accurate {
			accurate++
		}
	}

	fv.AvgReactionTime = sumReaction / n
	fv.HesitationTime = sumHesitation / n
	fv.TaskAccuracy = accurate / n

	var sq float64
	for _, r := range records {
		d := r.ReactionTimeMS - fv.AvgReactionTime
		sq += d * d
	}
	fv.ReactionTimeVariance = sq / n

	trace := records[len(records)-1].MouseSamples
	fv.CursorPathLength = pathLength(trace)
	fv.CursorDirectionChanges = float64(directionChanges(trace))
	fv.SpeedVariance = speedVariance(trace)

	return fv
}

func pathLength(samples []MouseSample) float64 {
	if len(samples) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(samples); i++ {
		total += math.Hypot(samples[i].X-samples[i-1].X, samples[i].Y-samples[i-1].Y)
	}
	return total
}

func directionChanges(samples []MouseSample) int {
	if len(samples) < 3 {
		return 0
	}
	changes := 0
	for i := 2; i < len(samples); i++ {
		prev := math.Atan2(samples[i-1].Y-samples[i-2].Y, samples[i-1].X-samples[i-2].X)
		cur := math.Atan2(samples[i].Y-samples[i-1].Y, samples[i].X-samples[i-1].X)
		// Raw magnitude of the subtraction, deliberately not wrapped
		// into [0, π]; turns near ±π depend on sign alignment.
		if math.Abs(cur-prev) > directionChangeThreshold {
			changes++
		}
	}
	return changes
}

func speedVariance(samples []MouseSample) float64 {
	var speeds []float64
	for i := 1; i < len(samples); i++ {
		dt := samples[i].TimestampMS - samples[i-1].TimestampMS
		if dt <= 0 {
			continue
		}
		dist := math.Hypot(samples[i].X-samples[i-1].X, samples[i].Y-samples[i-1].Y)
		speeds = append(speeds, dist/dt)
	}
	if len(speeds) == 0 {
		return 0
	}

	mean := 0.0
	for _, s := range speeds {
		mean += s
	}
	mean /= float64(len(speeds))

	variance := 0.0
	for _, s := range speeds {
		d := s - mean
		variance += d * d
	}
	return variance / float64(len(speeds))
}
