// Package lessons holds the grade/subject catalog and the quiz
// question banks the lesson screens draw from.
package lessons

import "fmt"

// CorrectAnswerXP is awarded for each correct quiz answer.
const CorrectAnswerXP = 10

type Grade struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Locked bool   `json:"locked"`
}

type Subject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type Question struct {
	ID         int      `json:"id"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Correct    int      `json:"-"` // never sent to clients
	Difficulty string   `json:"difficulty"`
	Hint       string   `json:"hint"`
}

// Grades returns the twelve class levels, all unlocked.
func Grades() []Grade {
	grades := make([]Grade, 12)
	for i := range grades {
		grades[i] = Grade{ID: i + 1, Name: fmt.Sprintf("Class %d", i+1)}
	}
	return grades
}

var Subjects = []Subject{
	{ID: "math", Name: "Math", Icon: "🔢"},
	{ID: "science", Name: "Science", Icon: "🔬"},
	{ID: "english", Name: "English", Icon: "📖"},
	{ID: "social", Name: "Social Studies", Icon: "🌍"},
}

var questionBanks = map[string][]Question{
	"math": {
		{
			ID:         1,
			Question:   "What is 5 + 3?",
			Options:    []string{"6", "7", "8", "9"},
			Correct:    2,
			Difficulty: "easy",
			Hint:       "Count on your fingers: 5... then add 3 more!",
		},
		{
			ID:         2,
			Question:   "Which number comes after 10?",
			Options:    []string{"9", "10", "11", "12"},
			Correct:    2,
			Difficulty: "easy",
			Hint:       "Think about counting: 9, 10, ???",
		},
		{
			ID:         3,
			Question:   "What is 10 - 4?",
			Options:    []string{"4", "5", "6", "7"},
			Correct:    2,
			Difficulty: "medium",
			Hint:       "Start at 10 and count backwards 4 times.",
		},
		{
			ID:         4,
			Question:   "What is 2 × 3?",
			Options:    []string{"4", "5", "6", "8"},
			Correct:    2,
			Difficulty: "medium",
			Hint:       "2 groups of 3: 🍎🍎🍎 + 🍎🍎🍎",
		},
		{
			ID:         5,
			Question:   "What is 12 ÷ 4?",
			Options:    []string{"2", "3", "4", "6"},
			Correct:    1,
			Difficulty: "hard",
			Hint:       "How many groups of 4 can you make from 12?",
		},
	},
	"science": {
		{
			ID:         1,
			Question:   "What do plants need to grow?",
			Options:    []string{"Only water", "Sunlight, water & air", "Just soil", "Only love"},
			Correct:    1,
			Difficulty: "easy",
			Hint:       "Plants are living things that need many things to survive.",
		},
		{
			ID:         2,
			Question:   "What is the largest planet in our solar system?",
			Options:    []string{"Earth", "Mars", "Jupiter", "Saturn"},
			Correct:    2,
			Difficulty: "medium",
			Hint:       "This planet is so big it could fit 1,300 Earths inside it!",
		},
	},
	"english": {
		{
			ID:         1,
			Question:   "Which word rhymes with \"cat\"?",
			Options:    []string{"Dog", "Hat", "Cup", "Pig"},
			Correct:    1,
			Difficulty: "easy",
			Hint:       "Rhyming words sound the same at the end. Cat... ___at!",
		},
		{
			ID:         2,
			Question:   "What is the opposite of \"happy\"?",
			Options:    []string{"Sad", "Angry", "Sleepy", "Hungry"},
			Correct:    0,
			Difficulty: "easy",
			Hint:       "When you're not happy, you feel ___.",
		},
	},
	"social": {
		{
			ID:         1,
			Question:   "What is the capital of India?",
			Options:    []string{"Mumbai", "New Delhi", "Kolkata", "Chennai"},
			Correct:    1,
			Difficulty: "easy",
			Hint:       "This city has \"Delhi\" in its name but with a word before it.",
		},
	},
}

// Questions returns the bank for a subject. Unknown subjects fall back
// to math rather than erroring, so a stale link still gets a quiz.
func Questions(subject string) []Question {
	if bank, ok := questionBanks[subject]; ok {
		return bank
	}
	return questionBanks["math"]
}

// CheckAnswer reports whether option is correct for the given question.
// ok is false when the question does not exist.
func CheckAnswer(subject string, questionID, option int) (correct, ok bool) {
	for _, q := range Questions(subject) {
		if q.ID == questionID {
			return q.Correct == option, true
		}
	}
	return false, false
}
