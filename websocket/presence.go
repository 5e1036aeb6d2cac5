package websocket

import (
	"sync"
	"time"
)

// PresencePayload is the ephemeral state one session broadcasts on the
// presence channel. TypingTo carries the user the typing indicator is
// aimed at; it is only shown to that user.
type PresencePayload struct {
	UserID   string    `json:"user_id"`
	LastSeen time.Time `json:"last_seen"`
	Typing   bool      `json:"typing"`
	TypingTo string    `json:"typing_to,omitempty"`
}

type presenceEntry struct {
	sessions int
	lastSeen time.Time
	typing   bool
	typingTo string
}

// PresenceTracker keeps the live view of who is online and who is typing.
// It is fed by join/leave transitions and full sync snapshots; a sync
// rebuilds the whole state in one step so readers never observe a user
// typing while shown offline.
type PresenceTracker struct {
	mu      sync.RWMutex
	entries map[string]*presenceEntry
}

func NewPresenceTracker() *PresenceTracker {
	return &PresenceTracker{entries: make(map[string]*presenceEntry)}
}

// ApplySync replaces the tracker state with the snapshot: the online set
// and the typing map are rebuilt together under one lock. Users with zero
// active sessions disappear entirely.
func (t *PresenceTracker) ApplySync(snapshot map[string][]PresencePayload) {
	rebuilt := make(map[string]*presenceEntry, len(snapshot))
	for userID, sessions := range snapshot {
		if len(sessions) == 0 {
			continue
		}
		entry := &presenceEntry{sessions: len(sessions)}
		for _, s := range sessions {
			if s.LastSeen.After(entry.lastSeen) {
				entry.lastSeen = s.LastSeen
			}
			if s.Typing {
				entry.typing = true
				entry.typingTo = s.TypingTo
			}
		}
		rebuilt[userID] = entry
	}

	t.mu.Lock()
	t.entries = rebuilt
	t.mu.Unlock()
}

// Join records one more active session for the user.
func (t *PresenceTracker) Join(userID string, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry, ok := t.entries[userID]
	if !ok {
		entry = &presenceEntry{}
		t.entries[userID] = entry
	}
	entry.sessions++
	if at.After(entry.lastSeen) {
		entry.lastSeen = at
	}
}

// Leave drops one session; the user goes offline when none remain, which
// also clears any typing state.
func (t *PresenceTracker) Leave(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry, ok := t.entries[userID]
	if !ok {
		return
	}
	entry.sessions--
	if entry.sessions <= 0 {
		delete(t.entries, userID)
	}
}

// SetTyping updates the user's typing flag and target. Ignored for users
// not currently online: typing is meaningless without a session.
func (t *PresenceTracker) SetTyping(userID string, typing bool, typingTo string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry, ok := t.entries[userID]
	if !ok {
		return
	}
	entry.typing = typing
	if typing {
		entry.typingTo = typingTo
	} else {
		entry.typingTo = ""
	}
	entry.lastSeen = time.Now()
}

// Online reports whether the user has at least one active session.
func (t *PresenceTracker) Online(userID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.entries[userID]
	return ok
}

// OnlineUsers returns the ids of all users with an active session.
func (t *PresenceTracker) OnlineUsers() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	users := make([]string, 0, len(t.entries))
	for userID := range t.entries {
		users = append(users, userID)
	}
	return users
}

// TypingTo returns the users currently typing to the viewer. Indicators
// aimed at someone else are not the viewer's business.
func (t *PresenceTracker) TypingTo(viewer string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var typing []string
	for userID, entry := range t.entries {
		if entry.typing && entry.typingTo == viewer {
			typing = append(typing, userID)
		}
	}
	return typing
}

// Snapshot renders the current state as a sync payload, one session list
// per online user.
func (t *PresenceTracker) Snapshot() map[string][]PresencePayload {
	t.mu.RLock()
	defer t.mu.RUnlock()
	snapshot := make(map[string][]PresencePayload, len(t.entries))
	for userID, entry := range t.entries {
		sessions := make([]PresencePayload, 0, entry.sessions)
		for i := 0; i < entry.sessions; i++ {
			sessions = append(sessions, PresencePayload{
				UserID:   userID,
				LastSeen: entry.lastSeen,
				Typing:   entry.typing,
				TypingTo: entry.typingTo,
			})
		}
		snapshot[userID] = sessions
	}
	return snapshot
}
