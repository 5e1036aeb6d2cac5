package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rgoswami08/shg_sangam/models"
)

var (
	userA = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001")
	userB = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000002")
	userC = uuid.MustParse("cccccccc-0000-0000-0000-000000000003")
)

func directMessage(id string, from, to uuid.UUID, at int64, read bool) models.Message {
	recipient := to
	return models.Message{
		ID:          uuid.MustParse(id),
		Content:     "hello",
		SenderID:    from,
		RecipientID: &recipient,
		Timestamp:   time.Unix(at, 0),
		Read:        read,
	}
}

func TestBuildConversationsOneEntryPerCounterparty(t *testing.T) {
	messages := []models.Message{
		directMessage("00000000-0000-0000-0000-000000000001", userA, userB, 1, false),
		directMessage("00000000-0000-0000-0000-000000000002", userB, userA, 2, false),
		directMessage("00000000-0000-0000-0000-000000000003", userA, userC, 3, false),
		directMessage("00000000-0000-0000-0000-000000000004", userC, userA, 4, false),
	}

	conversations := BuildConversations(messages, userA)
	if got := len(conversations); got != 2 {
		t.Fatalf("expected 2 conversations, got %d", got)
	}

	seen := map[uuid.UUID]bool{}
	for _, conv := range conversations {
		if seen[conv.CounterpartyID] {
			t.Fatalf("duplicate conversation for counterparty %s", conv.CounterpartyID)
		}
		seen[conv.CounterpartyID] = true
	}
	if !seen[userB] || !seen[userC] {
		t.Fatalf("expected conversations with both B and C, got %v", seen)
	}
}

func TestBuildConversationsSortedByLastMessageDescending(t *testing.T) {
	messages := []models.Message{
		directMessage("00000000-0000-0000-0000-000000000001", userA, userB, 10, false),
		directMessage("00000000-0000-0000-0000-000000000002", userC, userA, 30, false),
		directMessage("00000000-0000-0000-0000-000000000003", userB, userA, 20, false),
	}

	conversations := BuildConversations(messages, userA)
	if conversations[0].CounterpartyID != userC {
		t.Fatalf("expected most recent conversation with C first, got %s", conversations[0].CounterpartyID)
	}
	if conversations[1].CounterpartyID != userB {
		t.Fatalf("expected conversation with B second, got %s", conversations[1].CounterpartyID)
	}
	if got := conversations[0].LastMessage.Timestamp.Unix(); got != 30 {
		t.Fatalf("expected last message at t=30, got %d", got)
	}
}

func TestBuildConversationsLatestMessageWinsWithinThread(t *testing.T) {
	messages := []models.Message{
		directMessage("00000000-0000-0000-0000-000000000001", userA, userB, 1, false),
		directMessage("00000000-0000-0000-0000-000000000002", userB, userA, 2, false),
	}

	conversations := BuildConversations(messages, userA)
	if got := len(conversations); got != 1 {
		t.Fatalf("expected 1 conversation, got %d", got)
	}
	if got := conversations[0].LastMessage.Timestamp.Unix(); got != 2 {
		t.Fatalf("expected last message at t=2, got %d", got)
	}
	// The only unread message A received is the t=2 one from B.
	if got := conversations[0].UnreadCount; got != 1 {
		t.Fatalf("expected unread count 1, got %d", got)
	}
}

func TestBuildConversationsSkipsMessagesWithoutCounterparty(t *testing.T) {
	noRecipient := models.Message{
		ID:        uuid.MustParse("00000000-0000-0000-0000-000000000009"),
		Content:   "orphan",
		SenderID:  userA,
		Timestamp: time.Unix(5, 0),
	}
	messages := []models.Message{
		noRecipient,
		directMessage("00000000-0000-0000-0000-000000000001", userB, userA, 1, false),
	}

	conversations := BuildConversations(messages, userA)
	if got := len(conversations); got != 1 {
		t.Fatalf("expected malformed message to be skipped, got %d conversations", got)
	}
	if conversations[0].CounterpartyID != userB {
		t.Fatalf("expected conversation with B, got %s", conversations[0].CounterpartyID)
	}
}

func TestBuildConversationsEqualTimestampsDeterministic(t *testing.T) {
	messages := []models.Message{
		directMessage("00000000-0000-0000-0000-000000000001", userB, userA, 7, true),
		directMessage("00000000-0000-0000-0000-000000000002", userC, userA, 7, true),
	}

	first := BuildConversations(messages, userA)
	for i := 0; i < 10; i++ {
		again := BuildConversations(messages, userA)
		if again[0].CounterpartyID != first[0].CounterpartyID || again[1].CounterpartyID != first[1].CounterpartyID {
			t.Fatalf("conversation order not deterministic for equal timestamps")
		}
	}
}

func TestThreadMessagesAscendingAndFiltered(t *testing.T) {
	messages := []models.Message{
		directMessage("00000000-0000-0000-0000-000000000003", userB, userA, 30, false),
		directMessage("00000000-0000-0000-0000-000000000001", userA, userB, 10, true),
		directMessage("00000000-0000-0000-0000-000000000004", userA, userC, 15, false),
		directMessage("00000000-0000-0000-0000-000000000002", userB, userA, 20, false),
	}

	thread := ThreadMessages(messages, userA, userB)
	if got := len(thread); got != 3 {
		t.Fatalf("expected 3 messages in thread, got %d", got)
	}
	for i := 1; i < len(thread); i++ {
		if thread[i].Timestamp.Before(thread[i-1].Timestamp) {
			t.Fatalf("thread not in ascending timestamp order at index %d", i)
		}
	}
	for _, msg := range thread {
		if msg.SenderID != userB && (msg.RecipientID == nil || *msg.RecipientID != userB) {
			t.Fatalf("thread contains message not involving counterparty: %+v", msg)
		}
	}
}

func TestUnreadCountOnlyCountsInboundUnread(t *testing.T) {
	messages := []models.Message{
		// A's own unread outbound message must not count toward A's unread.
		directMessage("00000000-0000-0000-0000-000000000001", userA, userB, 1, false),
		directMessage("00000000-0000-0000-0000-000000000002", userB, userA, 2, false),
		directMessage("00000000-0000-0000-0000-000000000003", userB, userA, 3, true),
	}

	if got := UnreadCount(messages, userA, userB); got != 1 {
		t.Fatalf("expected unread count 1, got %d", got)
	}
	if got := UnreadCount(messages, userB, userA); got != 1 {
		t.Fatalf("expected B's unread count 1, got %d", got)
	}
}

func TestUnreadCountIncrementsByOnePerNewMessage(t *testing.T) {
	messages := []models.Message{
		directMessage("00000000-0000-0000-0000-000000000001", userB, userA, 1, false),
	}
	before := UnreadCount(messages, userA, userB)

	messages = append(messages, directMessage("00000000-0000-0000-0000-000000000002", userB, userA, 2, false))
	after := UnreadCount(messages, userA, userB)

	if after != before+1 {
		t.Fatalf("expected unread count to grow by 1, got %d -> %d", before, after)
	}
}

func TestUnreadMessageIDsEmptyAfterMarkingRead(t *testing.T) {
	messages := []models.Message{
		directMessage("00000000-0000-0000-0000-000000000001", userB, userA, 1, false),
		directMessage("00000000-0000-0000-0000-000000000002", userB, userA, 2, false),
	}

	ids := UnreadMessageIDs(messages, userA, userB)
	if got := len(ids); got != 2 {
		t.Fatalf("expected 2 unread ids, got %d", got)
	}

	// Flip them read, as the batched update would.
	for i := range messages {
		messages[i].Read = true
	}

	// Marking read again is a no-op: nothing left to update.
	if ids := UnreadMessageIDs(messages, userA, userB); len(ids) != 0 {
		t.Fatalf("expected no unread ids after mark-read, got %d", len(ids))
	}
	if got := UnreadCount(messages, userA, userB); got != 0 {
		t.Fatalf("expected unread count 0 after mark-read, got %d", got)
	}
}
