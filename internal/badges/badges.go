package badges

import "neurolearn/internal/progress"

type BadgeID string

const (
	BadgeFirstSteps = BadgeID("first_steps")
	BadgeBookworm   = BadgeID("bookworm")
	BadgeGameMaster = BadgeID("game_master")
	BadgeRisingStar = BadgeID("rising_star")
	BadgeOnFire     = BadgeID("on_fire")
	BadgeChampion   = BadgeID("champion")
)

type Badge struct {
	ID          BadgeID `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

var AllBadges = map[BadgeID]Badge{
	BadgeFirstSteps: {ID: BadgeFirstSteps, Name: "First Steps", Description: "Complete your first lesson", Icon: "👶"},
	BadgeBookworm:   {ID: BadgeBookworm, Name: "Bookworm", Description: "Complete 5 lessons", Icon: "📚"},
	BadgeGameMaster: {ID: BadgeGameMaster, Name: "Game Master", Description: "Play 3 games", Icon: "🎮"},
	BadgeRisingStar: {ID: BadgeRisingStar, Name: "Rising Star", Description: "Reach Level 5", Icon: "⭐"},
	BadgeOnFire:     {ID: BadgeOnFire, Name: "On Fire", Description: "3-day streak", Icon: "🔥"},
	BadgeChampion:   {ID: BadgeChampion, Name: "Champion", Description: "Earn 500 XP", Icon: "🏆"},
}

// order keeps Evaluate output stable for display.
var order = []BadgeID{
	BadgeFirstSteps,
	BadgeBookworm,
	BadgeGameMaster,
	BadgeRisingStar,
	BadgeOnFire,
	BadgeChampion,
}

type Status struct {
	Badge
	Unlocked bool `json:"unlocked"`
}

// Evaluate checks every achievement against the learner's aggregate.
func Evaluate(l progress.Learner) []Status {
	unlocked := map[BadgeID]bool{
		BadgeFirstSteps: l.LessonsCompleted >= 1,
		BadgeBookworm:   l.LessonsCompleted >= 5,
		BadgeGameMaster: l.GamesPlayed >= 3,
		BadgeRisingStar: l.Level >= 5,
		BadgeOnFire:     l.CurrentStreak >= 3,
		BadgeChampion:   l.TotalXP >= 500,
	}

	statuses := make([]Status, 0, len(order))
	for _, id := range order {
		statuses = append(statuses, Status{Badge: AllBadges[id], Unlocked: unlocked[id]})
	}
	return statuses
}
