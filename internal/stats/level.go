package stats

// Speed levels shown on the results screen.
const (
	LevelExpert       = "Expert"
	LevelAdvanced     = "Advanced"
	LevelIntermediate = "Intermediate"
	LevelBeginner     = "Beginner"
)

// SpeedLevel classifies a WPM figure.
func SpeedLevel(wpm int) string {
	switch {
	case wpm >= 60:
		return LevelExpert
	case wpm >= 40:
		return LevelAdvanced
	case wpm >= 25:
		return LevelIntermediate
	default:
		return LevelBeginner
	}
}

// Feedback returns the message for a finished test. Both speed and
// accuracy must reach a tier.
func Feedback(wpm, accuracy int) string {
	switch {
	case wpm >= 60 && accuracy >= 95:
		return "Excellent! You're a typing master!"
	case wpm >= 40 && accuracy >= 90:
		return "Great job! Keep up the good work!"
	case wpm >= 25 && accuracy >= 85:
		return "Good progress! Practice makes perfect!"
	default:
		return "Keep practicing to improve your speed and accuracy!"
	}
}
