package websocket

import (
	"testing"
	"time"
)

func TestApplySyncEmptySnapshot(t *testing.T) {
	tracker := NewPresenceTracker()
	tracker.Join("user-1", time.Now())
	tracker.SetTyping("user-1", true, "user-2")

	tracker.ApplySync(map[string][]PresencePayload{})

	if got := len(tracker.OnlineUsers()); got != 0 {
		t.Fatalf("expected empty online set after empty sync, got %d users", got)
	}
	if got := len(tracker.TypingTo("user-2")); got != 0 {
		t.Fatalf("expected empty typing map after empty sync, got %d", got)
	}
}

func TestApplySyncRebuildsFromScratch(t *testing.T) {
	tracker := NewPresenceTracker()
	tracker.Join("stale-user", time.Now())

	tracker.ApplySync(map[string][]PresencePayload{
		"user-1": {{UserID: "user-1", LastSeen: time.Now()}},
		"user-2": {
			{UserID: "user-2", LastSeen: time.Now()},
			{UserID: "user-2", LastSeen: time.Now(), Typing: true, TypingTo: "user-1"},
		},
		"user-3": {}, // zero sessions means offline
	})

	if tracker.Online("stale-user") {
		t.Fatal("expected stale user to be dropped by sync rebuild")
	}
	if !tracker.Online("user-1") || !tracker.Online("user-2") {
		t.Fatal("expected users from snapshot to be online")
	}
	if tracker.Online("user-3") {
		t.Fatal("expected user with zero sessions to be offline")
	}

	typing := tracker.TypingTo("user-1")
	if len(typing) != 1 || typing[0] != "user-2" {
		t.Fatalf("expected user-2 typing to user-1, got %v", typing)
	}
}

func TestTypingFilteredByViewer(t *testing.T) {
	tracker := NewPresenceTracker()
	tracker.Join("user-1", time.Now())
	tracker.SetTyping("user-1", true, "user-2")

	if got := tracker.TypingTo("user-2"); len(got) != 1 {
		t.Fatalf("expected typing indicator for target viewer, got %v", got)
	}
	// The indicator is aimed at user-2 only; other viewers see nothing.
	if got := tracker.TypingTo("user-3"); len(got) != 0 {
		t.Fatalf("expected no typing indicator for other viewers, got %v", got)
	}
}

func TestTypingClearedOnFalseUpdateAndOnLeave(t *testing.T) {
	tracker := NewPresenceTracker()
	tracker.Join("user-1", time.Now())

	tracker.SetTyping("user-1", true, "user-2")
	tracker.SetTyping("user-1", false, "")
	if got := tracker.TypingTo("user-2"); len(got) != 0 {
		t.Fatalf("expected typing cleared by false update, got %v", got)
	}

	tracker.SetTyping("user-1", true, "user-2")
	tracker.Leave("user-1")
	if tracker.Online("user-1") {
		t.Fatal("expected user offline after last leave")
	}
	if got := tracker.TypingTo("user-2"); len(got) != 0 {
		t.Fatalf("expected typing cleared on disconnect, got %v", got)
	}
}

func TestJoinLeaveSessionCounting(t *testing.T) {
	tracker := NewPresenceTracker()
	tracker.Join("user-1", time.Now())
	tracker.Join("user-1", time.Now())

	tracker.Leave("user-1")
	if !tracker.Online("user-1") {
		t.Fatal("expected user online while one session remains")
	}

	tracker.Leave("user-1")
	if tracker.Online("user-1") {
		t.Fatal("expected user offline after all sessions closed")
	}
}

func TestSetTypingIgnoredWhenOffline(t *testing.T) {
	tracker := NewPresenceTracker()
	tracker.SetTyping("ghost", true, "user-1")

	if tracker.Online("ghost") {
		t.Fatal("typing update must not create a presence entry")
	}
	if got := tracker.TypingTo("user-1"); len(got) != 0 {
		t.Fatalf("expected no typing from offline user, got %v", got)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	tracker := NewPresenceTracker()
	tracker.Join("user-1", time.Now())
	tracker.Join("user-1", time.Now())
	tracker.Join("user-2", time.Now())
	tracker.SetTyping("user-2", true, "user-1")

	rebuilt := NewPresenceTracker()
	rebuilt.ApplySync(tracker.Snapshot())

	if !rebuilt.Online("user-1") || !rebuilt.Online("user-2") {
		t.Fatal("expected snapshot round trip to preserve online set")
	}
	typing := rebuilt.TypingTo("user-1")
	if len(typing) != 1 || typing[0] != "user-2" {
		t.Fatalf("expected snapshot round trip to preserve typing state, got %v", typing)
	}
}
