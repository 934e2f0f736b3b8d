// Package kv provides the synchronous key-value surface the learner
// state persists to. Values are plain strings; the progress store owns
// their encoding.
package kv

// Keys for the persisted learner state.
const (
	KeyMode          = "neurolearn-mode"
	KeyOnboarded     = "neurolearn-onboarded"
	KeyProgress      = "neurolearn-progress"
	KeyPlaybackSpeed = "neurolearn-playback-speed"
)

type Store interface {
	// Get returns the value for key, and whether the key was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	// Reset removes every key. Used by the full user-initiated reset.
	Reset() error
	Close() error
}
