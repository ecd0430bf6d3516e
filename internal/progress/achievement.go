package progress

// Achievement identifies an unlockable badge.
type Achievement string

const (
	AchievementFirstSteps   Achievement = "first_steps"
	AchievementQuizMaster   Achievement = "quiz_master"
	AchievementHighAchiever Achievement = "high_achiever"
)

// Thresholds for unlocking achievements.
const (
	FirstStepsNotes      = 1
	QuizMasterAttempts   = 5
	HighAchieverMinScore = 80.0
)

// AllAchievements returns all achievements in display order.
func AllAchievements() []Achievement {
	return []Achievement{AchievementFirstSteps, AchievementQuizMaster, AchievementHighAchiever}
}

// Unlocked reports whether s satisfies the achievement's condition.
func (a Achievement) Unlocked(s Snapshot) bool {
	switch a {
	case AchievementFirstSteps:
		return s.TotalNotes >= FirstStepsNotes
	case AchievementQuizMaster:
		return s.TotalAttempts >= QuizMasterAttempts
	case AchievementHighAchiever:
		return s.AverageScore >= HighAchieverMinScore
	default:
		return false
	}
}

// DisplayName returns a human-readable label.
func (a Achievement) DisplayName() string {
	switch a {
	case AchievementFirstSteps:
		return "First Steps"
	case AchievementQuizMaster:
		return "Quiz Master"
	case AchievementHighAchiever:
		return "High Achiever"
	default:
		return string(a)
	}
}

// Description explains how the achievement is earned.
func (a Achievement) Description() string {
	switch a {
	case AchievementFirstSteps:
		return "Upload your first document"
	case AchievementQuizMaster:
		return "Complete 5 quizzes"
	case AchievementHighAchiever:
		return "Maintain an 80% average"
	default:
		return ""
	}
}

// Icon returns the display icon.
func (a Achievement) Icon() string {
	switch a {
	case AchievementFirstSteps:
		return "📚"
	case AchievementQuizMaster:
		return "🧠"
	case AchievementHighAchiever:
		return "🏆"
	default:
		return "✦"
	}
}
