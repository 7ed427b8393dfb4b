package verification

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// zigzagTrace builds a trace with sharp turns, variable speed, and a
// long path; enough motion to trip every cursor heuristic.
func zigzagTrace() []MouseSample {
	samples := []MouseSample{}
	x, y := 0.0, 0.0
	ts := 0.0
	for i := 0; i < 15; i++ {
		if i%2 == 0 {
			x += 30
		} else {
			y += 30
		}
		ts += float64(5 + i*3)
		samples = append(samples, MouseSample{X: x, Y: y, TimestampMS: ts})
	}
	return samples
}

func TestServiceSessionLifecycle(t *testing.T) {
	svc := NewService(nil, discardLogger())

	session := svc.StartSession()
	if session.ID == "" {
		t.Fatal("expected non-empty session id")
	}
	if svc.ActiveSessions() != 1 {
		t.Errorf("active sessions = %d, want 1", svc.ActiveSessions())
	}

	if err := svc.RecordChallenge(session.ID, ChallengeClickTarget, 1500, 400, true, zigzagTrace()); err != nil {
		t.Fatalf("record challenge: %v", err)
	}

	result, err := svc.Verify(session.ID)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if result.SessionID != session.ID {
		t.Errorf("result session id = %s, want %s", result.SessionID, session.ID)
	}

	// Session is single use: discarded once the result is produced.
	if svc.ActiveSessions() != 0 {
		t.Errorf("active sessions after verify = %d, want 0", svc.ActiveSessions())
	}
	if _, err := svc.Verify(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second verify error = %v, want ErrSessionNotFound", err)
	}
}

func TestServiceRecordChallengeUnknownSession(t *testing.T) {
	svc := NewService(nil, discardLogger())
	err := svc.RecordChallenge("nope", ChallengeClickTarget, 1500, 400, true, nil)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestServiceFallbackEndToEnd(t *testing.T) {
	svc := NewService(nil, discardLogger())

	session := svc.StartSession()
	trace := zigzagTrace()
	// Reaction times spread widely enough that the population variance
	// clears the fallback threshold of 100000.
	svc.RecordChallenge(session.ID, ChallengeClickTarget, 1200, 400, true, trace)
	svc.RecordChallenge(session.ID, ChallengeSequence, 2000, 500, true, trace)
	svc.RecordChallenge(session.ID, ChallengeTimedReaction, 1300, 450, true, trace)

	result, err := svc.Verify(session.ID)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if result.ModelUsed != ModelUsedRule {
		t.Errorf("model used = %s, want %s", result.ModelUsed, ModelUsedRule)
	}
	if result.Features.TaskAccuracy != 1.0 {
		t.Errorf("task_accuracy = %f, want 1.0", result.Features.TaskAccuracy)
	}
	if !almostEqual(result.Features.AvgReactionTime, 1500, 1e-9) {
		t.Errorf("avg_reaction_time = %f, want 1500", result.Features.AvgReactionTime)
	}
	if result.Features.ReactionTimeVariance <= 100000 {
		t.Errorf("reaction_time_variance = %f, want > 100000", result.Features.ReactionTimeVariance)
	}
	if result.Features.CursorDirectionChanges <= 5 {
		t.Errorf("cursor_direction_changes = %f, want > 5", result.Features.CursorDirectionChanges)
	}

	// Every fallback rule passes, so the clamped sum hits the ceiling.
	if result.Probability < 0.99 {
		t.Errorf("probability = %f, want 1.0", result.Probability)
	}
	if result.Level != LevelHigh {
		t.Errorf("level = %s, want high", result.Level)
	}
	assertContributionInvariants(t, result.Contributions)
}

func TestServiceEmptySessionScoresLow(t *testing.T) {
	svc := NewService(nil, discardLogger())
	session := svc.StartSession()

	result, err := svc.Verify(session.ID)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if result.Features != (FeatureVector{}) {
		t.Errorf("expected zero feature vector, got %+v", result.Features)
	}
	if result.Probability != 0.3 {
		t.Errorf("probability = %f, want fallback floor 0.3", result.Probability)
	}
	if result.Level != LevelLow {
		t.Errorf("level = %s, want low", result.Level)
	}
}

func TestServiceWithTrainedModel(t *testing.T) {
	svc := NewService(testModel(), discardLogger())

	if !svc.ModelLoaded() {
		t.Fatal("expected model to be loaded")
	}

	result, err := svc.VerifyFeatures("session-1", FeatureVector{
		AvgReactionTime:        1600,
		ReactionTimeVariance:   150000,
		TaskAccuracy:           1.0,
		HesitationTime:         450,
		CursorPathLength:       450,
		CursorDirectionChanges: 12,
		SpeedVariance:          0.04,
	})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if result.ModelUsed != ModelUsedML {
		t.Errorf("model used = %s, want %s", result.ModelUsed, ModelUsedML)
	}
	if result.Probability < 0 || result.Probability > 1 {
		t.Errorf("probability %f outside [0,1]", result.Probability)
	}
	if len(result.Contributions) != 7 {
		t.Errorf("expected 7 contributions, got %d", len(result.Contributions))
	}
	assertContributionInvariants(t, result.Contributions)
}

func TestServiceFeatureMismatchIsHardError(t *testing.T) {
	model := &TrainedModel{
		FeatureOrder: []string{"typing_speed"},
		Weights:      []float64{1.0},
	}
	svc := NewService(model, discardLogger())

	_, err := svc.VerifyFeatures("session-1", FeatureVector{})
	if !errors.Is(err, ErrFeatureMismatch) {
		t.Fatalf("expected ErrFeatureMismatch, got %v", err)
	}
}

func TestServiceVerifyRecordsStateless(t *testing.T) {
	svc := NewService(nil, discardLogger())

	records := []ChallengeRecord{
		{Type: ChallengeClickTarget, ReactionTimeMS: 1500, HesitationTimeMS: 400, Accurate: true},
	}
	result, err := svc.VerifyRecords("external-1", records)
	if err != nil {
		t.Fatalf("verify records: %v", err)
	}
	if result.SessionID != "external-1" {
		t.Errorf("session id = %s, want external-1", result.SessionID)
	}
	if svc.ActiveSessions() != 0 {
		t.Errorf("stateless verify should not create sessions, have %d", svc.ActiveSessions())
	}
}
