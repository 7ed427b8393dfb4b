package verification

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeModelFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write model file: %v", err)
	}
	return path
}

func TestLoadModel(t *testing.T) {
	path := writeModelFile(t, `{
		"feature_order": [
			"avg_reaction_time", "reaction_time_variance", "task_accuracy",
			"hesitation_time", "cursor_path_length", "cursor_direction_changes",
			"speed_variance"
		],
		"weights": [-0.8, 1.2, 0.9, 0.3, 0.4, 0.7, 1.1],
		"bias": -0.25,
		"model_type": "logistic",
		"accuracy": 0.92,
		"trained_at": "2026-08-01T12:00:00Z"
	}`)

	model, err := LoadModel(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(model.FeatureOrder) != 7 {
		t.Errorf("feature order length = %d, want 7", len(model.FeatureOrder))
	}
	if len(model.Weights) != 7 {
		t.Errorf("weights length = %d, want 7", len(model.Weights))
	}
	if model.Bias != -0.25 {
		t.Errorf("bias = %f, want -0.25", model.Bias)
	}
	if model.Accuracy != 0.92 {
		t.Errorf("accuracy = %f, want 0.92", model.Accuracy)
	}
}

func TestLoadModelMissingFile(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error for missing artifact")
	}
}

func TestLoadModelInvalidJSON(t *testing.T) {
	path := writeModelFile(t, `{broken`)
	if _, err := LoadModel(path); err == nil {
		t.Fatal("expected error for malformed artifact")
	}
}

func TestLoadModelMisalignedWeights(t *testing.T) {
	path := writeModelFile(t, `{
		"feature_order": ["avg_reaction_time", "task_accuracy"],
		"weights": [0.5],
		"bias": 0
	}`)

	_, err := LoadModel(path)
	if !errors.Is(err, ErrFeatureMismatch) {
		t.Fatalf("expected ErrFeatureMismatch, got %v", err)
	}
}

func TestLoadModelEmptyFeatureOrder(t *testing.T) {
	path := writeModelFile(t, `{"feature_order": [], "weights": [], "bias": 0}`)

	_, err := LoadModel(path)
	if !errors.Is(err, ErrFeatureMismatch) {
		t.Fatalf("expected ErrFeatureMismatch, got %v", err)
	}
}
