package progress

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"

	"neurolearn/internal/kv"
)

// Notifier receives change notifications after successful mutations,
// so connected screens can re-render and re-theme.
type Notifier interface {
	ModeChanged(mode Mode)
	ProgressChanged(l Learner)
}

// Store is the single source of truth for onboarding, learning mode,
// preferences and progress. Every mutation writes through to the
// key-value surface before returning.
type Store struct {
	mu       sync.Mutex
	kv       kv.Store
	notifier Notifier // may be nil

	mode      Mode
	onboarded bool
	speed     float64
	learner   Learner
}

// New loads the persisted state, falling back to defaults for any key
// that is absent or unparseable. Construction never fails on bad data.
func New(store kv.Store, notifier Notifier) *Store {
	s := &Store{
		kv:       store,
		notifier: notifier,
		mode:     ModeUnset,
		speed:    1,
		learner:  DefaultLearner(),
	}
	s.load()
	return s
}

func (s *Store) load() {
	if v, ok, err := s.kv.Get(kv.KeyMode); err == nil && ok {
		if m := Mode(v); ValidMode(m) {
			s.mode = m
		} else {
			log.Printf("[Progress] Ignoring unknown persisted mode %q\n", v)
		}
	}

	if v, ok, err := s.kv.Get(kv.KeyOnboarded); err == nil && ok {
		s.onboarded = v == "true"
	}

	if v, ok, err := s.kv.Get(kv.KeyProgress); err == nil && ok {
		var l Learner
		if err := json.Unmarshal([]byte(v), &l); err != nil {
			log.Printf("[Progress] Corrupt progress snapshot, using defaults: %v\n", err)
		} else {
			if l.Badges == nil {
				l.Badges = []string{}
			}
			s.learner = l
		}
	}

	if v, ok, err := s.kv.Get(kv.KeyPlaybackSpeed); err == nil && ok {
		if speed, err := strconv.ParseFloat(v, 64); err == nil && speed > 0 {
			s.speed = speed
		} else {
			log.Printf("[Progress] Ignoring invalid persisted playback speed %q\n", v)
		}
	}
}

func (s *Store) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode sets the learning mode. Unset clears the in-memory mode but
// leaves the persisted value untouched.
func (s *Store) SetMode(mode Mode) error {
	if !ValidMode(mode) {
		return fmt.Errorf("unknown learning mode %q", mode)
	}

	s.mu.Lock()
	s.mode = mode
	if mode != ModeUnset {
		if err := s.kv.Set(kv.KeyMode, string(mode)); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.ModeChanged(mode)
	}
	return nil
}

func (s *Store) Onboarded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.onboarded
}

func (s *Store) SetOnboarded(value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onboarded = value
	return s.kv.Set(kv.KeyOnboarded, strconv.FormatBool(value))
}

func (s *Store) PlaybackSpeed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speed
}

func (s *Store) SetPlaybackSpeed(speed float64) error {
	if speed <= 0 {
		return fmt.Errorf("playback speed must be positive, got %v", speed)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speed = speed
	return s.kv.Set(kv.KeyPlaybackSpeed, strconv.FormatFloat(speed, 'f', -1, 64))
}

// Progress returns a copy of the aggregate.
func (s *Store) Progress() Learner {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// snapshot copies the learner; callers must hold the mutex.
func (s *Store) snapshot() Learner {
	l := s.learner
	l.Badges = append([]string{}, s.learner.Badges...)
	return l
}

// UpdateProgress shallow-merges the provided fields and persists the
// full merged aggregate. Callers own the consistency of what they set.
func (s *Store) UpdateProgress(u Update) (Learner, error) {
	s.mu.Lock()
	if u.LessonsCompleted != nil {
		s.learner.LessonsCompleted = *u.LessonsCompleted
	}
	if u.TotalXP != nil {
		s.learner.TotalXP = *u.TotalXP
	}
	if u.CurrentStreak != nil {
		s.learner.CurrentStreak = *u.CurrentStreak
	}
	if u.Badges != nil {
		s.learner.Badges = append([]string{}, (*u.Badges)...)
	}
	if u.GamesPlayed != nil {
		s.learner.GamesPlayed = *u.GamesPlayed
	}
	if u.Accuracy != nil {
		s.learner.Accuracy = *u.Accuracy
	}
	if u.TimeSpent != nil {
		s.learner.TimeSpent = *u.TimeSpent
	}
	if u.Level != nil {
		s.learner.Level = *u.Level
	}
	if err := s.persistLearner(); err != nil {
		s.mu.Unlock()
		return Learner{}, err
	}
	l := s.snapshot()
	s.mu.Unlock()

	s.notifyProgress(l)
	return l, nil
}

// AddXP adds to totalXP and recomputes the level. Negative amounts are
// accepted; callers own sensible values.
func (s *Store) AddXP(amount int) (Learner, error) {
	s.mu.Lock()
	l, err := s.addXPLocked(amount)
	s.mu.Unlock()
	if err != nil {
		return Learner{}, err
	}

	s.notifyProgress(l)
	return l, nil
}

func (s *Store) addXPLocked(amount int) (Learner, error) {
	s.learner.TotalXP += amount
	s.learner.Level = LevelFor(s.learner.TotalXP)
	if err := s.persistLearner(); err != nil {
		return Learner{}, err
	}
	return s.snapshot(), nil
}

// CompleteLesson increments lessonsCompleted and persists, then awards
// the fixed lesson XP as a second persisted write. The intermediate
// state (lesson counted, XP not yet added) is observable in storage.
func (s *Store) CompleteLesson() (Learner, error) {
	s.mu.Lock()
	s.learner.LessonsCompleted++
	if err := s.persistLearner(); err != nil {
		s.mu.Unlock()
		return Learner{}, err
	}
	l, err := s.addXPLocked(LessonXP)
	s.mu.Unlock()
	if err != nil {
		return Learner{}, err
	}

	s.notifyProgress(l)
	return l, nil
}

// ResetAll clears every persisted key and reinstates defaults.
func (s *Store) ResetAll() error {
	s.mu.Lock()
	if err := s.kv.Reset(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mode = ModeUnset
	s.onboarded = false
	s.speed = 1
	s.learner = DefaultLearner()
	l := s.snapshot()
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.ModeChanged(ModeUnset)
	}
	s.notifyProgress(l)
	return nil
}

// persistLearner serializes the full aggregate; callers must hold the
// mutex.
func (s *Store) persistLearner() error {
	data, err := json.Marshal(s.learner)
	if err != nil {
		return fmt.Errorf("encoding progress: %w", err)
	}
	return s.kv.Set(kv.KeyProgress, string(data))
}

func (s *Store) notifyProgress(l Learner) {
	if s.notifier != nil {
		s.notifier.ProgressChanged(l)
	}
}
