package websocket

import (
	"sync"
	"testing"
	"time"
)

type typingRecorder struct {
	mu     sync.Mutex
	events []bool
	target []string
}

func (r *typingRecorder) record(typing bool, typingTo string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, typing)
	r.target = append(r.target, typingTo)
}

func (r *typingRecorder) snapshot() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]bool, len(r.events))
	copy(out, r.events)
	return out
}

func TestTypingDebounceSingleBurst(t *testing.T) {
	recorder := &typingRecorder{}
	notifier := NewTypingNotifier(100*time.Millisecond, recorder.record)

	// Keystrokes inside the quiet interval: one burst.
	notifier.Keystroke("peer")
	time.Sleep(20 * time.Millisecond)
	notifier.Keystroke("peer")
	time.Sleep(20 * time.Millisecond)
	notifier.Keystroke("peer")

	// Only the opening typing:true so far.
	if got := recorder.snapshot(); len(got) != 1 || got[0] != true {
		t.Fatalf("expected exactly one typing:true during burst, got %v", got)
	}

	// Silence past the quiet interval produces the single typing:false.
	time.Sleep(250 * time.Millisecond)
	got := recorder.snapshot()
	if len(got) != 2 || got[0] != true || got[1] != false {
		t.Fatalf("expected [true false] after silence, got %v", got)
	}
}

func TestTypingDebounceTimerResetsPerKeystroke(t *testing.T) {
	recorder := &typingRecorder{}
	notifier := NewTypingNotifier(100*time.Millisecond, recorder.record)

	notifier.Keystroke("peer")
	// Keep typing just before each expiry; no false must fire in between.
	for i := 0; i < 4; i++ {
		time.Sleep(60 * time.Millisecond)
		notifier.Keystroke("peer")
	}
	if got := recorder.snapshot(); len(got) != 1 {
		t.Fatalf("expected timer resets to suppress typing:false, got %v", got)
	}

	time.Sleep(250 * time.Millisecond)
	got := recorder.snapshot()
	if len(got) != 2 || got[1] != false {
		t.Fatalf("expected closing typing:false after input stopped, got %v", got)
	}
}

func TestTypingNewBurstAfterQuiet(t *testing.T) {
	recorder := &typingRecorder{}
	notifier := NewTypingNotifier(50*time.Millisecond, recorder.record)

	notifier.Keystroke("peer")
	time.Sleep(150 * time.Millisecond)
	notifier.Keystroke("peer")
	time.Sleep(150 * time.Millisecond)

	got := recorder.snapshot()
	if len(got) != 4 || got[0] != true || got[1] != false || got[2] != true || got[3] != false {
		t.Fatalf("expected two complete bursts [true false true false], got %v", got)
	}
}

func TestTypingStopFlushesActiveBurst(t *testing.T) {
	recorder := &typingRecorder{}
	notifier := NewTypingNotifier(time.Second, recorder.record)

	notifier.Keystroke("peer")
	notifier.Stop()

	got := recorder.snapshot()
	if len(got) != 2 || got[1] != false {
		t.Fatalf("expected Stop to emit the closing typing:false, got %v", got)
	}

	// Stop when idle is silent.
	notifier.Stop()
	if got := recorder.snapshot(); len(got) != 2 {
		t.Fatalf("expected idle Stop to broadcast nothing, got %v", got)
	}
}

func TestTypingTargetCarriedOnStart(t *testing.T) {
	recorder := &typingRecorder{}
	notifier := NewTypingNotifier(50*time.Millisecond, recorder.record)

	notifier.Keystroke("peer-1")
	time.Sleep(150 * time.Millisecond)

	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	if recorder.target[0] != "peer-1" {
		t.Fatalf("expected typing:true to carry the counterparty, got %q", recorder.target[0])
	}
	if recorder.target[1] != "" {
		t.Fatalf("expected typing:false to clear the counterparty, got %q", recorder.target[1])
	}
}
