package progress

import (
	"testing"

	"neurolearn/internal/kv"
)

func newTestStore(t *testing.T) (*Store, *kv.MemoryStore) {
	t.Helper()
	mem := kv.NewMemory()
	return New(mem, nil), mem
}

func TestNew_Defaults(t *testing.T) {
	s, _ := newTestStore(t)

	l := s.Progress()
	if l.LessonsCompleted != 0 || l.TotalXP != 0 || l.GamesPlayed != 0 ||
		l.Accuracy != 0 || l.TimeSpent != 0 {
		t.Errorf("fresh aggregate has non-zero counters: %+v", l)
	}
	if l.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", l.CurrentStreak)
	}
	if l.Level != 1 {
		t.Errorf("Level = %d, want 1", l.Level)
	}
	if len(l.Badges) != 0 {
		t.Errorf("Badges = %v, want empty", l.Badges)
	}
	if s.Mode() != ModeUnset {
		t.Errorf("Mode = %q, want unset", s.Mode())
	}
	if s.Onboarded() {
		t.Error("fresh store should not be onboarded")
	}
	if s.PlaybackSpeed() != 1 {
		t.Errorf("PlaybackSpeed = %v, want 1", s.PlaybackSpeed())
	}
}

func TestAddXP_SumAndLevel(t *testing.T) {
	s, _ := newTestStore(t)

	amounts := []int{10, 25, 40, 30, 120}
	sum := 0
	for _, a := range amounts {
		sum += a
		l, err := s.AddXP(a)
		if err != nil {
			t.Fatal(err)
		}
		if l.TotalXP != sum {
			t.Errorf("TotalXP = %d, want %d", l.TotalXP, sum)
		}
		if want := sum/100 + 1; l.Level != want {
			t.Errorf("Level = %d, want %d (at %d XP)", l.Level, want, sum)
		}
	}
}

func TestCompleteLesson_Once(t *testing.T) {
	s, _ := newTestStore(t)

	l, err := s.CompleteLesson()
	if err != nil {
		t.Fatal(err)
	}
	if l.LessonsCompleted != 1 {
		t.Errorf("LessonsCompleted = %d, want 1", l.LessonsCompleted)
	}
	if l.TotalXP != 25 {
		t.Errorf("TotalXP = %d, want 25", l.TotalXP)
	}
	if l.Level != 1 {
		t.Errorf("Level = %d, want 1", l.Level)
	}
}

func TestCompleteLesson_FourTimesLevelsUp(t *testing.T) {
	s, _ := newTestStore(t)

	var l Learner
	var err error
	for range 4 {
		l, err = s.CompleteLesson()
		if err != nil {
			t.Fatal(err)
		}
	}
	if l.TotalXP != 100 {
		t.Errorf("TotalXP = %d, want 100", l.TotalXP)
	}
	if l.Level != 2 {
		t.Errorf("Level = %d, want 2", l.Level)
	}
}

func TestSetPlaybackSpeed_SurvivesReload(t *testing.T) {
	s, mem := newTestStore(t)

	if err := s.SetPlaybackSpeed(1.5); err != nil {
		t.Fatal(err)
	}

	reloaded := New(mem, nil)
	if reloaded.PlaybackSpeed() != 1.5 {
		t.Errorf("PlaybackSpeed after reload = %v, want 1.5", reloaded.PlaybackSpeed())
	}
}

func TestSetPlaybackSpeed_RejectsNonPositive(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.SetPlaybackSpeed(0); err == nil {
		t.Error("SetPlaybackSpeed(0) should fail")
	}
	if err := s.SetPlaybackSpeed(-1); err == nil {
		t.Error("SetPlaybackSpeed(-1) should fail")
	}
	if s.PlaybackSpeed() != 1 {
		t.Errorf("PlaybackSpeed = %v, want unchanged 1", s.PlaybackSpeed())
	}
}

func TestSetMode_PersistsAndReloads(t *testing.T) {
	s, mem := newTestStore(t)

	if err := s.SetMode(ModeDyslexia); err != nil {
		t.Fatal(err)
	}

	reloaded := New(mem, nil)
	if reloaded.Mode() != ModeDyslexia {
		t.Errorf("Mode after reload = %q, want %q", reloaded.Mode(), ModeDyslexia)
	}
}

func TestSetMode_UnsetDoesNotClearPersisted(t *testing.T) {
	s, mem := newTestStore(t)

	if err := s.SetMode(ModeADHD); err != nil {
		t.Fatal(err)
	}
	if err := s.SetMode(ModeUnset); err != nil {
		t.Fatal(err)
	}
	if s.Mode() != ModeUnset {
		t.Errorf("Mode = %q, want unset", s.Mode())
	}

	// The persisted mode is only overwritten by a non-empty mode.
	v, ok, _ := mem.Get(kv.KeyMode)
	if !ok || v != "adhd" {
		t.Errorf("persisted mode = (%q, %v), want (%q, true)", v, ok, "adhd")
	}
}

func TestSetMode_RejectsUnknown(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.SetMode("turbo"); err == nil {
		t.Error("SetMode with unknown mode should fail")
	}
}

func TestUpdateProgress_ShallowMerge(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddXP(40)

	games := 3
	accuracy := 85
	l, err := s.UpdateProgress(Update{GamesPlayed: &games, Accuracy: &accuracy})
	if err != nil {
		t.Fatal(err)
	}

	if l.GamesPlayed != 3 {
		t.Errorf("GamesPlayed = %d, want 3", l.GamesPlayed)
	}
	if l.Accuracy != 85 {
		t.Errorf("Accuracy = %d, want 85", l.Accuracy)
	}
	// Untouched fields survive the merge.
	if l.TotalXP != 40 {
		t.Errorf("TotalXP = %d, want 40", l.TotalXP)
	}
	if l.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", l.CurrentStreak)
	}
}

func TestNew_CorruptSnapshotFallsBackToDefaults(t *testing.T) {
	mem := kv.NewMemory()
	mem.Set(kv.KeyProgress, "{not json")
	mem.Set(kv.KeyPlaybackSpeed, "fast")
	mem.Set(kv.KeyMode, "turbo")

	s := New(mem, nil)

	l := s.Progress()
	if l.TotalXP != 0 || l.Level != 1 || l.CurrentStreak != 1 {
		t.Errorf("corrupt snapshot should yield defaults, got %+v", l)
	}
	if s.PlaybackSpeed() != 1 {
		t.Errorf("PlaybackSpeed = %v, want 1", s.PlaybackSpeed())
	}
	if s.Mode() != ModeUnset {
		t.Errorf("Mode = %q, want unset", s.Mode())
	}
}

func TestNew_LoadsPersistedState(t *testing.T) {
	mem := kv.NewMemory()
	first := New(mem, nil)
	first.SetOnboarded(true)
	first.AddXP(250)

	s := New(mem, nil)
	if !s.Onboarded() {
		t.Error("Onboarded should survive reload")
	}
	l := s.Progress()
	if l.TotalXP != 250 {
		t.Errorf("TotalXP = %d, want 250", l.TotalXP)
	}
	if l.Level != 3 {
		t.Errorf("Level = %d, want 3", l.Level)
	}
}

func TestResetAll(t *testing.T) {
	s, mem := newTestStore(t)
	s.SetMode(ModeExplore)
	s.SetOnboarded(true)
	s.AddXP(300)
	s.SetPlaybackSpeed(2)

	if err := s.ResetAll(); err != nil {
		t.Fatal(err)
	}

	if s.Mode() != ModeUnset || s.Onboarded() || s.PlaybackSpeed() != 1 {
		t.Error("preferences should reset to defaults")
	}
	l := s.Progress()
	if l.TotalXP != 0 || l.Level != 1 {
		t.Errorf("aggregate should reset, got %+v", l)
	}
	if _, ok, _ := mem.Get(kv.KeyProgress); ok {
		t.Error("persisted keys should be cleared")
	}
}

type recordingNotifier struct {
	modes    []Mode
	learners []Learner
}

func (r *recordingNotifier) ModeChanged(m Mode) { r.modes = append(r.modes, m) }

func (r *recordingNotifier) ProgressChanged(l Learner) { r.learners = append(r.learners, l) }

func TestMutations_Notify(t *testing.T) {
	n := &recordingNotifier{}
	s := New(kv.NewMemory(), n)

	s.SetMode(ModeDyslexia)
	s.AddXP(10)
	s.CompleteLesson()

	if len(n.modes) != 1 || n.modes[0] != ModeDyslexia {
		t.Errorf("mode notifications = %v, want [dyslexia]", n.modes)
	}
	if len(n.learners) != 2 {
		t.Fatalf("progress notifications = %d, want 2", len(n.learners))
	}
	if n.learners[1].TotalXP != 35 {
		t.Errorf("last notified TotalXP = %d, want 35", n.learners[1].TotalXP)
	}
}

func TestCompleteLesson_TwoWrites(t *testing.T) {
	mem := kv.NewMemory()
	counting := &countingStore{MemoryStore: mem}
	s := New(counting, nil)

	counting.sets = 0
	if _, err := s.CompleteLesson(); err != nil {
		t.Fatal(err)
	}
	if counting.sets != 2 {
		t.Errorf("CompleteLesson persisted %d times, want 2", counting.sets)
	}
}

type countingStore struct {
	*kv.MemoryStore
	sets int
}

func (c *countingStore) Set(key, value string) error {
	c.sets++
	return c.MemoryStore.Set(key, value)
}
