package websocket

import (
	"sync"
	"time"
)

const typingQuietInterval = 1000 * time.Millisecond

// TypingNotifier debounces a user's keystroke activity into at most one
// typing:true broadcast per burst and one typing:false after the quiet
// interval. Every keystroke restarts the timer, so the false broadcast
// fires only once input has actually stopped. Best effort: broadcasts are
// fire-and-forget, never retried or acknowledged.
type TypingNotifier struct {
	mu        sync.Mutex
	interval  time.Duration
	broadcast func(typing bool, typingTo string)
	timer     *time.Timer
	typing    bool
	target    string
}

// NewTypingNotifier wires the notifier to a broadcast function. A zero
// interval selects the 1 second default.
func NewTypingNotifier(interval time.Duration, broadcast func(typing bool, typingTo string)) *TypingNotifier {
	if interval <= 0 {
		interval = typingQuietInterval
	}
	return &TypingNotifier{interval: interval, broadcast: broadcast}
}

// Keystroke records input aimed at the given counterparty. The first
// keystroke of a burst broadcasts typing:true; subsequent ones only push
// the quiet timer out. Switching counterparties mid-burst retargets the
// indicator.
func (n *TypingNotifier) Keystroke(typingTo string) {
	if typingTo == "" {
		return
	}

	n.mu.Lock()
	wasTyping := n.typing && n.target == typingTo
	n.typing = true
	n.target = typingTo
	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = time.AfterFunc(n.interval, n.quiet)
	n.mu.Unlock()

	if !wasTyping {
		n.broadcast(true, typingTo)
	}
}

func (n *TypingNotifier) quiet() {
	n.mu.Lock()
	if !n.typing {
		n.mu.Unlock()
		return
	}
	n.typing = false
	n.target = ""
	n.timer = nil
	n.mu.Unlock()

	n.broadcast(false, "")
}

// Stop cancels the pending timer and, if a burst was in flight, sends the
// closing typing:false. Called on conversation switch and teardown.
func (n *TypingNotifier) Stop() {
	n.mu.Lock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	wasTyping := n.typing
	n.typing = false
	n.target = ""
	n.mu.Unlock()

	if wasTyping {
		n.broadcast(false, "")
	}
}
