package verification

import (
	"time"
)

type ChallengeType string

const (
	ChallengeClickTarget   ChallengeType = "click-target"
	ChallengeSequence      ChallengeType = "sequence"
	ChallengeTimedReaction ChallengeType = "timed-reaction"
)

// MouseSample is a single cursor position reported by the capture
// front end. Timestamps are milliseconds, monotonic per challenge.
type MouseSample struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	TimestampMS float64 `json:"timestamp"`
}

// ChallengeRecord is the outcome of one completed challenge.
type ChallengeRecord struct {
	Type             ChallengeType `json:"type"`
	ReactionTimeMS   float64       `json:"reactionTime"`
	HesitationTimeMS float64       `json:"hesitationTime"`
	Accurate         bool          `json:"accurate"`
	MouseSamples     []MouseSample `json:"mouseSamples"`
}

// Session is one verification attempt. It lives from StartSession
// until Verify returns, then it is discarded.
type Session struct {
	ID        string
	Buffer    *Buffer
	StartedAt time.Time
}

// Contribution is the signed influence of one feature on a specific
// session's score. Positive always matches the sign of Weight.
type Contribution struct {
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`
	Positive bool    `json:"positive"`
}

const (
	ModelUsedML   = "ML"
	ModelUsedRule = "Rule-Based"
)

// Result is the outcome of scoring one session.
type Result struct {
	SessionID     string
	Probability   float64
	Contributions []Contribution
	Features      FeatureVector
	Level         Level
	ModelUsed     string
	CompletedAt   time.Time
}
