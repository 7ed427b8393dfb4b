package verification

import (
	"fmt"
	"math"
	"sort"
)

// Logit magnitudes beyond this saturate the sigmoid to 0 or 1 instead
// of feeding math.Exp an overflowing exponent.
const logitSaturation = 40.0

// Score applies the trained linear model to a feature vector. It
// returns the human-presence probability and the per-feature
// contributions (weight_i × feature_i, the influence on this
// particular session) sorted by descending absolute value.
//
// A nil model returns ErrModelNotLoaded so the caller can switch to
// the rule-based fallback. A model naming a feature the extractor
// does not produce returns ErrFeatureMismatch.
func Score(fv FeatureVector, model *TrainedModel) (float64, []Contribution, error) {
	if model == nil {
		return 0, nil, ErrModelNotLoaded
	}
	if err := model.Validate(); err != nil {
		return 0, nil, err
	}

	logit := model.Bias
	contributions := make([]Contribution, 0, len(model.FeatureOrder))
	for i, name := range model.FeatureOrder {
		value, ok := fv.ValueOf(name)
		if !ok {
			return 0, nil, fmt.Errorf("%w: model expects unknown feature %q", ErrFeatureMismatch, name)
		}
		weight := model.Weights[i] * value
		logit += weight
		contributions = append(contributions, Contribution{
			Name:     name,
			Weight:   weight,
			Positive: weight > 0,
		})
	}

	sortContributions(contributions)
	return sigmoid(logit), contributions, nil
}

func sigmoid(logit float64) float64 {
	if logit > logitSaturation {
		return 1
	}
	if logit < -logitSaturation {
		return 0
	}
	return 1 / (1 + math.Exp(-logit))
}

func sortContributions(contributions []Contribution) {
	sort.SliceStable(contributions, func(i, j int) bool {
		return math.Abs(contributions[i].Weight) > math.Abs(contributions[j].Weight)
	})
}
