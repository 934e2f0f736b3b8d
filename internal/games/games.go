// Package games holds the word-game catalog, round content and XP
// reward rules.
package games

import (
	"crypto/rand"
	"math/big"
	"strings"
)

type Game struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	RewardXP    int    `json:"rewardXP"` // per correct match/word
}

var All = []Game{
	{ID: "word-match", Name: "Word Match", Description: "Match words with their pictures", Icon: "🎯", RewardXP: 5},
	{ID: "spell-word", Name: "Spell the Word", Description: "Drag letters to spell words correctly", Icon: "✏️", RewardXP: 10},
	{ID: "unscramble", Name: "Unscramble", Description: "Rearrange letters to form words", Icon: "🔀", RewardXP: 15},
}

func Get(id string) (Game, bool) {
	for _, g := range All {
		if g.ID == id {
			return g, true
		}
	}
	return Game{}, false
}

type WordPair struct {
	Word  string `json:"word"`
	Emoji string `json:"emoji"`
}

type SpellWord struct {
	Word string `json:"word"`
	Hint string `json:"hint"`
}

type ScrambledWord struct {
	Scrambled string `json:"scrambled"`
	Answer    string `json:"-"`
	Hint      string `json:"hint"`
}

var wordMatchData = []WordPair{
	{Word: "Apple", Emoji: "🍎"},
	{Word: "Dog", Emoji: "🐕"},
	{Word: "Sun", Emoji: "☀️"},
	{Word: "Book", Emoji: "📖"},
	{Word: "Star", Emoji: "⭐"},
	{Word: "Moon", Emoji: "🌙"},
}

var spellWordData = []SpellWord{
	{Word: "CAT", Hint: "🐱"},
	{Word: "DOG", Hint: "🐕"},
	{Word: "SUN", Hint: "☀️"},
	{Word: "HAT", Hint: "🎩"},
	{Word: "BED", Hint: "🛏️"},
}

var unscrambleData = []ScrambledWord{
	{Scrambled: "OGD", Answer: "DOG", Hint: "🐕"},
	{Scrambled: "TAC", Answer: "CAT", Hint: "🐱"},
	{Scrambled: "NUS", Answer: "SUN", Hint: "☀️"},
	{Scrambled: "ERTRE", Answer: "TREE", Hint: "🌳"},
	{Scrambled: "OKBO", Answer: "BOOK", Hint: "📖"},
}

// MatchRoundSize is how many pairs a word-match round draws.
const MatchRoundSize = 4

// MatchRound draws a shuffled subset of the word/emoji pairs.
func MatchRound() []WordPair {
	return shuffle(wordMatchData)[:MatchRoundSize]
}

func SpellRound() []SpellWord {
	return spellWordData
}

func UnscrambleRound() []ScrambledWord {
	return unscrambleData
}

// CheckSpelling reports whether input spells the word at index.
func CheckSpelling(index int, input string) bool {
	if index < 0 || index >= len(spellWordData) {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(input), spellWordData[index].Word)
}

// CheckUnscramble reports whether input solves the word at index.
func CheckUnscramble(index int, input string) bool {
	if index < 0 || index >= len(unscrambleData) {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(input), unscrambleData[index].Answer)
}

func shuffle[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	for i := len(out) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return out
		}
		j := int(n.Int64())
		out[i], out[j] = out[j], out[i]
	}
	return out
}
