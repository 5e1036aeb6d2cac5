package services

import (
	"sort"

	"github.com/google/uuid"
	"github.com/rgoswami08/shg_sangam/models"
)

// ConversationSummary is one entry in a user's conversation list: the
// other party, the newest message exchanged with them, and how many of
// their messages the viewer has not read yet. Derived, never persisted.
type ConversationSummary struct {
	CounterpartyID uuid.UUID      `json:"counterparty_id"`
	LastMessage    models.Message `json:"last_message"`
	UnreadCount    int            `json:"unread_count"`
}

// BuildConversations derives the viewer's conversation list from a flat,
// unordered message collection: one entry per distinct counterparty,
// carrying the message with the latest timestamp, sorted newest first.
// Messages without a usable counterparty are skipped. When two messages
// share an exact timestamp the later-processed one wins; the final order
// falls back to message id so equal-timestamp conversations stay stable.
func BuildConversations(messages []models.Message, viewer uuid.UUID) []ConversationSummary {
	latest := make(map[uuid.UUID]models.Message)
	unread := make(map[uuid.UUID]int)

	for _, msg := range messages {
		other, ok := msg.Counterparty(viewer)
		if !ok {
			continue
		}
		if current, seen := latest[other]; !seen || !msg.Timestamp.Before(current.Timestamp) {
			latest[other] = msg
		}
		if msg.SenderID == other && !msg.Read {
			unread[other]++
		}
	}

	summaries := make([]ConversationSummary, 0, len(latest))
	for other, msg := range latest {
		summaries = append(summaries, ConversationSummary{
			CounterpartyID: other,
			LastMessage:    msg,
			UnreadCount:    unread[other],
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		ti, tj := summaries[i].LastMessage.Timestamp, summaries[j].LastMessage.Timestamp
		if ti.Equal(tj) {
			return summaries[i].LastMessage.ID.String() > summaries[j].LastMessage.ID.String()
		}
		return ti.After(tj)
	})

	return summaries
}

// ThreadMessages returns the direct-message thread between viewer and
// counterparty in ascending timestamp order. The input is treated as
// unordered: realtime events may have landed out of order relative to the
// initial fetch, so the thread is always re-sorted.
func ThreadMessages(messages []models.Message, viewer, counterparty uuid.UUID) []models.Message {
	thread := make([]models.Message, 0)
	for _, msg := range messages {
		if msg.RecipientID == nil {
			continue
		}
		if (msg.SenderID == viewer && *msg.RecipientID == counterparty) ||
			(msg.SenderID == counterparty && *msg.RecipientID == viewer) {
			thread = append(thread, msg)
		}
	}

	sort.SliceStable(thread, func(i, j int) bool {
		return thread[i].Timestamp.Before(thread[j].Timestamp)
	})
	return thread
}

// UnreadCount counts messages from counterparty to viewer not yet read.
func UnreadCount(messages []models.Message, viewer, counterparty uuid.UUID) int {
	return len(UnreadMessageIDs(messages, viewer, counterparty))
}

// UnreadMessageIDs lists the ids the mark-read batch update must flip.
// Empty result means mark-read is a no-op.
func UnreadMessageIDs(messages []models.Message, viewer, counterparty uuid.UUID) []uuid.UUID {
	var ids []uuid.UUID
	for _, msg := range messages {
		if msg.Read || msg.SenderID != counterparty {
			continue
		}
		if msg.RecipientID != nil && *msg.RecipientID == viewer {
			ids = append(ids, msg.ID)
		}
	}
	return ids
}
