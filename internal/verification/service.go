package verification

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Service runs the verification pipeline: buffered challenge signals →
// feature extraction → linear model (or rule-based fallback) →
// confidence classification. Sessions are held in memory for the
// duration of one verification attempt and discarded when the result
// is produced.
//
// The trained model is shared read-only across all calls; sessions are
// guarded by the mutex so independent callers can verify concurrently.
type Service struct {
	model      *TrainedModel
	logger     *slog.Logger
	sessions   map[string]*Session
	sessionsMu sync.RWMutex
}

func NewService(model *TrainedModel, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		model:    model,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// ModelLoaded reports whether a trained model artifact is available.
func (s *Service) ModelLoaded() bool {
	return s.model != nil
}

// Model returns the loaded artifact, or nil in fallback mode.
func (s *Service) Model() *TrainedModel {
	return s.model
}

// StartSession creates a new session with an empty signal buffer.
func (s *Service) StartSession() *Session {
	session := &Session{
		ID:        uuid.New().String(),
		Buffer:    NewBuffer(),
		StartedAt: time.Now(),
	}

	s.sessionsMu.Lock()
	s.sessions[session.ID] = session
	s.sessionsMu.Unlock()

	s.logger.Debug("session started", "session_id", session.ID)
	return session
}

// ActiveSessions returns the number of sessions awaiting verification.
func (s *Service) ActiveSessions() int {
	s.sessionsMu.RLock()
	defer s.sessionsMu.RUnlock()
	return len(s.sessions)
}

// RecordChallenge appends one challenge outcome to a session's buffer.
func (s *Service) RecordChallenge(sessionID string, challengeType ChallengeType, reactionMS, hesitationMS float64, accurate bool, samples []MouseSample) error {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return ErrSessionNotFound
	}

	session.Buffer.RecordChallenge(challengeType, reactionMS, hesitationMS, accurate, samples)
	return nil
}

// Verify scores a buffered session and discards it. The session is
// removed even when scoring fails; a verification attempt is single
// use either way.
func (s *Service) Verify(sessionID string) (*Result, error) {
	s.sessionsMu.Lock()
	session, exists := s.sessions[sessionID]
	if exists {
		delete(s.sessions, sessionID)
	}
	s.sessionsMu.Unlock()

	if !exists {
		return nil, ErrSessionNotFound
	}

	return s.VerifyRecords(sessionID, session.Buffer.Records())
}

// VerifyRecords scores a caller-supplied record sequence without
// touching session state.
func (s *Service) VerifyRecords(sessionID string, records []ChallengeRecord) (*Result, error) {
	return s.VerifyFeatures(sessionID, Extract(records))
}

// VerifyFeatures scores a precomputed feature vector. The capture
// front end may extract features client-side and submit them directly.
func (s *Service) VerifyFeatures(sessionID string, fv FeatureVector) (*Result, error) {
	probability, contributions, err := Score(fv, s.model)
	modelUsed := ModelUsedML
	switch {
	case err == nil:
	case errors.Is(err, ErrModelNotLoaded):
		probability, contributions = FallbackScore(fv)
		modelUsed = ModelUsedRule
	default:
		return nil, err
	}

	level := Classify(probability)
	s.logger.Info("verification scored",
		"session_id", sessionID,
		"confidence", probability,
		"level", string(level),
		"model_used", modelUsed,
	)

	return &Result{
		SessionID:     sessionID,
		Probability:   probability,
		Contributions: contributions,
		Features:      fv,
		Level:         level,
		ModelUsed:     modelUsed,
		CompletedAt:   time.Now(),
	}, nil
}
