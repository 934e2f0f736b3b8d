package progress

// Mode is the learner's personalization profile. It shapes both the
// UI theming and the phrasing of AI explanations.
type Mode string

const (
	ModeDyslexia = Mode("dyslexia")
	ModeADHD     = Mode("adhd")
	ModeExplore  = Mode("explore")
	ModeUnset    = Mode("")
)

func ValidMode(m Mode) bool {
	switch m {
	case ModeDyslexia, ModeADHD, ModeExplore, ModeUnset:
		return true
	}
	return false
}

const (
	// LessonXP is the fixed reward for finishing a lesson.
	LessonXP = 25
	// XPPerLevel controls the level curve: level = totalXP/100 + 1.
	XPPerLevel = 100
)

// Learner is the gamified progress aggregate, one instance per device.
type Learner struct {
	LessonsCompleted int      `json:"lessonsCompleted"`
	TotalXP          int      `json:"totalXP"`
	CurrentStreak    int      `json:"currentStreak"`
	Badges           []string `json:"badges"`
	GamesPlayed      int      `json:"gamesPlayed"`
	Accuracy         int      `json:"accuracy"`  // percentage [0,100]
	TimeSpent        int      `json:"timeSpent"` // minutes
	Level            int      `json:"level"`
}

func DefaultLearner() Learner {
	return Learner{
		LessonsCompleted: 0,
		TotalXP:          0,
		CurrentStreak:    1,
		Badges:           []string{},
		GamesPlayed:      0,
		Accuracy:         0,
		TimeSpent:        0,
		Level:            1,
	}
}

// LevelFor derives the level from cumulative XP.
func LevelFor(totalXP int) int {
	return totalXP/XPPerLevel + 1
}

// Update is a partial Learner; nil fields are left untouched by
// UpdateProgress.
type Update struct {
	LessonsCompleted *int      `json:"lessonsCompleted,omitempty"`
	TotalXP          *int      `json:"totalXP,omitempty"`
	CurrentStreak    *int      `json:"currentStreak,omitempty"`
	Badges           *[]string `json:"badges,omitempty"`
	GamesPlayed      *int      `json:"gamesPlayed,omitempty"`
	Accuracy         *int      `json:"accuracy,omitempty"`
	TimeSpent        *int      `json:"timeSpent,omitempty"`
	Level            *int      `json:"level,omitempty"`
}
