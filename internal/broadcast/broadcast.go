package broadcast

import (
	"sync"

	"neurolearn/internal/events"
	"neurolearn/internal/progress"
)

// Message is the JSON payload pushed to subscribed screens.
type Message struct {
	Type     string            `json:"t"` // "mode" or "progress"
	Mode     progress.Mode     `json:"mode,omitempty"`
	Progress *progress.Learner `json:"progress,omitempty"`
}

type Broadcaster struct {
	Mu      sync.Mutex
	Clients map[chan Message]bool
}

func NewBroadcaster(bus *events.Bus) *Broadcaster {
	b := &Broadcaster{
		Clients: make(map[chan Message]bool),
	}
	go func() {
		for {
			select {
			case ev := <-bus.ModeChanges:
				b.Broadcast(Message{Type: "mode", Mode: ev.Mode})
			case ev := <-bus.ProgressChanges:
				l := ev.Learner
				b.Broadcast(Message{Type: "progress", Progress: &l})
			}
		}
	}()
	return b
}

func (b *Broadcaster) Subscribe() chan Message {
	ch := make(chan Message, 10)
	b.Mu.Lock()
	b.Clients[ch] = true
	b.Mu.Unlock()
	return ch
}

func (b *Broadcaster) Unsubscribe(ch chan Message) {
	b.Mu.Lock()
	delete(b.Clients, ch)
	b.Mu.Unlock()
	close(ch)
}

func (b *Broadcaster) Broadcast(msg Message) {
	b.Mu.Lock()
	defer b.Mu.Unlock()
	for ch := range b.Clients {
		select {
		case ch <- msg:
		default:
			// skip clients with full channels
		}
	}
}
