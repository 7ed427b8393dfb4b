package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mkravets/liveproof/internal/database"
	"github.com/mkravets/liveproof/internal/verification"
)

type App struct {
	Verifier       *verification.Service
	Results        *database.ResultRepository // nil when persistence is disabled
	Logger         *slog.Logger
	ModelPath      string
	ChallengeCount int
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

func (app *App) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "running",
		Service:     "LiveProof Backend",
		ModelLoaded: app.Verifier.ModelLoaded(),
	})
}

func (app *App) StartSessionHandler(w http.ResponseWriter, r *http.Request) {
	session := app.Verifier.StartSession()
	writeJSON(w, http.StatusCreated, StartSessionResponse{
		SessionID:      session.ID,
		ChallengeCount: app.ChallengeCount,
	})
}

func (app *App) RecordChallengeHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload ChallengePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid challenge payload", SessionID: sessionID})
		return
	}

	err := app.Verifier.RecordChallenge(
		sessionID,
		verification.ChallengeType(payload.Type),
		payload.ReactionTime,
		payload.HesitationTime,
		payload.Accurate,
		payload.MouseSamples,
	)
	if err != nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "session not found", SessionID: sessionID})
		return
	}

	challengesRecorded.WithLabelValues(payload.Type).Inc()
	w.WriteHeader(http.StatusNoContent)
}

func (app *App) VerifyHandler(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid verify request"})
		return
	}

	var result *verification.Result
	var err error
	switch {
	case req.Features != nil:
		result, err = app.Verifier.VerifyFeatures(req.SessionID, *req.Features)
	case len(req.Records) > 0:
		result, err = app.Verifier.VerifyRecords(req.SessionID, toRecords(req.Records))
	default:
		result, err = app.Verifier.Verify(req.SessionID)
	}

	if err != nil {
		app.writeVerifyError(w, req.SessionID, err)
		return
	}

	verificationsTotal.WithLabelValues(result.ModelUsed, string(result.Level)).Inc()
	verifyConfidence.Observe(result.Probability)
	app.storeResult(r, result)

	writeJSON(w, http.StatusOK, VerifyResponse{
		SessionID:         result.SessionID,
		Confidence:        result.Probability,
		FeatureImportance: result.Contributions,
		Features:          result.Features,
		Level:             string(result.Level),
		Label:             result.Level.Label(),
		Timestamp:         result.CompletedAt.UTC().Format(time.RFC3339),
		ModelUsed:         result.ModelUsed,
	})
}

func (app *App) StatsHandler(w http.ResponseWriter, r *http.Request) {
	resp := StatsResponse{
		ModelLoaded:  app.Verifier.ModelLoaded(),
		FeatureCount: len(verification.FeatureNames),
		Features:     verification.FeatureNames,
		ModelPath:    app.ModelPath,
	}

	if model := app.Verifier.Model(); model != nil {
		resp.ModelType = model.ModelType
		resp.ModelTrained = model.TrainedAt
		resp.Accuracy = model.Accuracy
	}

	if app.Results != nil {
		counts, err := app.Results.CountByLevel(r.Context())
		if err != nil {
			app.Logger.Warn("failed to count stored results", "error", err)
		} else {
			resp.ResultCounts = counts
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (app *App) writeVerifyError(w http.ResponseWriter, sessionID string, err error) {
	switch {
	case errors.Is(err, verification.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "session not found", SessionID: sessionID})
	case errors.Is(err, verification.ErrFeatureMismatch):
		// Model artifact and extractor disagree on the feature set; a
		// deployment defect, so surface it instead of degrading.
		featureMismatches.Inc()
		app.Logger.Error("feature mismatch between model artifact and extractor", "session_id", sessionID, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error(), SessionID: sessionID})
	default:
		app.Logger.Error("verification failed", "session_id", sessionID, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "verification failed", SessionID: sessionID})
	}
}

// storeResult persists the outcome when a result store is configured.
// Store errors are logged and swallowed; persistence never fails a
// verification.
func (app *App) storeResult(r *http.Request, result *verification.Result) {
	if app.Results == nil {
		return
	}

	features, err := json.Marshal(result.Features)
	if err != nil {
		app.Logger.Warn("failed to marshal features for storage", "session_id", result.SessionID, "error", err)
		return
	}

	stored := &database.StoredResult{
		SessionID:  result.SessionID,
		Confidence: result.Probability,
		Level:      string(result.Level),
		ModelUsed:  result.ModelUsed,
		Features:   features,
		CreatedAt:  result.CompletedAt.UTC(),
	}
	if err := app.Results.Insert(r.Context(), stored); err != nil {
		app.Logger.Warn("failed to store verification result", "session_id", result.SessionID, "error", err)
	}
}

func toRecords(payloads []ChallengePayload) []verification.ChallengeRecord {
	buffer := verification.NewBuffer()
	for _, p := range payloads {
		buffer.RecordChallenge(
			verification.ChallengeType(p.Type),
			p.ReactionTime,
			p.HesitationTime,
			p.Accurate,
			p.MouseSamples,
		)
	}
	return buffer.Records()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
