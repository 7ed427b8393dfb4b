package verification

// Level is the discrete confidence band derived from a probability.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// Classify maps a probability to a confidence level. Band lower bounds
// are inclusive: 0.70 is high, 0.40 is medium.
func Classify(probability float64) Level {
	switch {
	case probability >= 0.70:
		return LevelHigh
	case probability >= 0.40:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Label returns the user-facing description of a level.
func (l Level) Label() string {
	switch l {
	case LevelHigh:
		return "Human Present"
	case LevelMedium:
		return "Uncertain"
	case LevelLow:
		return "Potential Synthetic"
	}
	return "Unknown"
}
