package api

import (
	"github.com/mkravets/liveproof/internal/verification"
)

type StartSessionResponse struct {
	SessionID      string `json:"sessionId"`
	ChallengeCount int    `json:"challengeCount"`
}

// ChallengePayload is one challenge outcome posted by the capture
// front end. Times are milliseconds; malformed timing is sanitized,
// never rejected.
type ChallengePayload struct {
	Type           string                     `json:"type"`
	ReactionTime   float64                    `json:"reactionTime"`
	HesitationTime float64                    `json:"hesitationTime"`
	Accurate       bool                       `json:"accurate"`
	MouseSamples   []verification.MouseSample `json:"mouseSamples"`
}

// VerifyRequest scores a session. Exactly one signal source applies,
// checked in order: a precomputed feature vector, a list of challenge
// records, or the server-side buffer for SessionID.
type VerifyRequest struct {
	SessionID string                      `json:"sessionId"`
	Features  *verification.FeatureVector `json:"features,omitempty"`
	Records   []ChallengePayload          `json:"records,omitempty"`
}

type VerifyResponse struct {
	SessionID         string                      `json:"sessionId"`
	Confidence        float64                     `json:"confidence"`
	FeatureImportance []verification.Contribution `json:"featureImportance"`
	Features          verification.FeatureVector  `json:"features"`
	Level             string                      `json:"level"`
	Label             string                      `json:"label"`
	Timestamp         string                      `json:"timestamp"`
	ModelUsed         string                      `json:"modelUsed"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	ModelLoaded bool   `json:"model_loaded"`
}

type StatsResponse struct {
	ModelLoaded  bool           `json:"model_loaded"`
	ModelType    string         `json:"model_type,omitempty"`
	ModelTrained string         `json:"model_trained_at,omitempty"`
	Accuracy     float64        `json:"accuracy,omitempty"`
	FeatureCount int            `json:"feature_count"`
	Features     []string       `json:"features"`
	ModelPath    string         `json:"model_path"`
	ResultCounts map[string]int `json:"result_counts,omitempty"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	SessionID string `json:"sessionId,omitempty"`
}
