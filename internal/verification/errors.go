package verification

import "errors"

var (
	// ErrModelNotLoaded indicates no trained model artifact is available.
	// Callers recover by switching to the rule-based fallback scorer.
	ErrModelNotLoaded = errors.New("model not loaded")
	// ErrFeatureMismatch indicates the model artifact names a feature the
	// extractor does not produce. This is a deployment defect, not a data
	// quality issue, and is surfaced as a hard error.
	ErrFeatureMismatch = errors.New("feature mismatch")
	// ErrSessionNotFound indicates an unknown or already verified session.
	ErrSessionNotFound = errors.New("session not found")
)
