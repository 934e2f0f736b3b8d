package events

import "neurolearn/internal/progress"

type ModeChangedEvent struct {
	Mode progress.Mode
}

type ProgressChangedEvent struct {
	Learner progress.Learner
}

type Bus struct {
	ModeChanges     chan ModeChangedEvent
	ProgressChanges chan ProgressChangedEvent
}

func NewBus() *Bus {
	return &Bus{
		ModeChanges:     make(chan ModeChangedEvent, 10),
		ProgressChanges: make(chan ProgressChangedEvent, 10),
	}
}

// ModeChanged publishes without blocking; if nothing is draining the
// bus the event is dropped rather than stalling a mutation.
func (b *Bus) ModeChanged(mode progress.Mode) {
	select {
	case b.ModeChanges <- ModeChangedEvent{Mode: mode}:
	default:
	}
}

func (b *Bus) ProgressChanged(l progress.Learner) {
	select {
	case b.ProgressChanges <- ProgressChangedEvent{Learner: l}:
	default:
	}
}
