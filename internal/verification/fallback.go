package verification

// Rule-based scoring used when no trained model artifact is present.
// Each rule contributes a fixed weight depending on whether its
// threshold check passes:
//
//	avg_reaction_time        < 2000 ms  → +0.25, else −0.15
//	reaction_time_variance   > 100000   → +0.20, else −0.10
//	task_accuracy            > 0.6      → +0.20, else −0.05
//	cursor_direction_changes > 5        → +0.15, else +0.08
//	speed_variance           > 0.01     → +0.20, else −0.08
//
// The sum is clamped to [0.3, 1.0]; the floor keeps the fallback from
// reporting near-zero confidence in demo mode.
const (
	fallbackFloor   = 0.3
	fallbackCeiling = 1.0
)

type fallbackRule struct {
	name      string
	check     func(FeatureVector) bool
	whenTrue  float64
	whenFalse float64
}

var fallbackRules = []fallbackRule{
	{
		name:      FeatureAvgReactionTime,
		check:     func(fv FeatureVector) bool { return fv.AvgReactionTime < 2000 },
		whenTrue:  0.25,
		whenFalse: -0.15,
	},
	{
		name:      FeatureReactionTimeVariance,
		check:     func(fv FeatureVector) bool { return fv.ReactionTimeVariance > 100000 },
		whenTrue:  0.20,
		whenFalse: -0.10,
	},
	{
		name:      FeatureTaskAccuracy,
		check:     func(fv FeatureVector) bool { return fv.TaskAccuracy > 0.6 },
		whenTrue:  0.20,
		whenFalse: -0.05,
	},
	{
		name:      FeatureCursorDirectionChanges,
		check:     func(fv FeatureVector) bool { return fv.CursorDirectionChanges > 5 },
		whenTrue:  0.15,
		whenFalse: 0.08,
	},
	{
		name:      FeatureSpeedVariance,
		check:     func(fv FeatureVector) bool { return fv.SpeedVariance > 0.01 },
		whenTrue:  0.20,
		whenFalse: -0.08,
	},
}

// FallbackScore produces a probability and contribution list of the
// same shape as Score, without a trained model.
func FallbackScore(fv FeatureVector) (float64, []Contribution) {
	sum := 0.0
	contributions := make([]Contribution, 0, len(fallbackRules))
	for _, rule := range fallbackRules {
		weight := rule.whenFalse
		if rule.check(fv) {
			weight = rule.whenTrue
		}
		sum += weight
		contributions = append(contributions, Contribution{
			Name:     rule.name,
			Weight:   weight,
			Positive: weight > 0,
		})
	}

	sortContributions(contributions)
	return clamp(sum, fallbackFloor, fallbackCeiling), contributions
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
