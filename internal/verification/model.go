package verification

import (
	"encoding/json"
	"fmt"
	"os"
)

// TrainedModel is the logistic regression artifact exported by the
// training pipeline. It is loaded once at process start and shared
// read-only by all scoring calls; nothing mutates it after load.
type TrainedModel struct {
	FeatureOrder []string  `json:"feature_order"`
	Weights      []float64 `json:"weights"`
	Bias         float64   `json:"bias"`
	ModelType    string    `json:"model_type,omitempty"`
	Accuracy     float64   `json:"accuracy,omitempty"`
	TrainedAt    string    `json:"trained_at,omitempty"`
}

// LoadModel reads a trained model artifact from a JSON file. A missing
// or unreadable artifact is an error the caller may treat as non-fatal
// by running without a model.
func LoadModel(path string) (*TrainedModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model artifact: %w", err)
	}

	var model TrainedModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("parsing model artifact: %w", err)
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}

	return &model, nil
}

// Validate checks the structural shape of the artifact: weights must
// align one-to-one with the feature order.
func (m *TrainedModel) Validate() error {
	if len(m.FeatureOrder) == 0 {
		return fmt.Errorf("%w: artifact has no feature order", ErrFeatureMismatch)
	}
	if len(m.Weights) != len(m.FeatureOrder) {
		return fmt.Errorf("%w: %d weights for %d features", ErrFeatureMismatch, len(m.Weights), len(m.FeatureOrder))
	}
	return nil
}
