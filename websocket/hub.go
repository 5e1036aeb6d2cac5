package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rgoswami08/shg_sangam/models"
	"github.com/gofiber/contrib/websocket"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
	Typing *TypingNotifier
}

// MessageEvent is a row-change notification pushed to both participants
// of a direct message. Insert events echo back to the sender too; clients
// dedupe by message id.
type MessageEvent struct {
	Type    string          `json:"type"` // "insert" or "update"
	Message *models.Message `json:"message"`
}

// Envelope is the single wire shape written to clients.
type Envelope struct {
	Type     string                       `json:"type"`
	Message  *models.Message              `json:"message,omitempty"`
	Presence map[string][]PresencePayload `json:"presence,omitempty"`
	Error    string                       `json:"error,omitempty"`
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex

var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan *MessageEvent, 64)
var presenceDirty = make(chan struct{}, 1)

// Tracker is the authoritative presence view; handlers read it and the
// hub rebroadcasts a full sync snapshot whenever it changes.
var Tracker = NewPresenceTracker()

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Client registered: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
			Tracker.Join(client.UserID.String(), time.Now())
			broadcastPresence()
		case client := <-Unregister:
			log.Printf("Client unregistered: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
			Tracker.Leave(client.UserID.String())
			broadcastPresence()
		case event := <-Broadcast:
			deliver(event)
		case <-presenceDirty:
			broadcastPresence()
		}
	}
}

// NotifyTyping records a typing transition and flags the hub to push a
// fresh presence sync. Lost broadcasts are acceptable; indicators are
// advisory and the next sync corrects them.
func NotifyTyping(userID string, typing bool, typingTo string) {
	Tracker.SetTyping(userID, typing, typingTo)
	select {
	case presenceDirty <- struct{}{}:
	default:
	}
}

func deliver(event *MessageEvent) {
	msg := event.Message
	recipients := []uuid.UUID{msg.SenderID}
	if msg.RecipientID != nil && *msg.RecipientID != msg.SenderID {
		recipients = append(recipients, *msg.RecipientID)
	}

	envelope := Envelope{Type: event.Type, Message: msg}
	for _, userID := range recipients {
		sendTo(userID, envelope)
	}
}

func broadcastPresence() {
	snapshot := Tracker.Snapshot()
	envelope := Envelope{Type: "presence_sync", Presence: snapshot}

	clientsMu.RLock()
	targets := make([]uuid.UUID, 0, len(clients))
	for userID := range clients {
		targets = append(targets, userID)
	}
	clientsMu.RUnlock()

	for _, userID := range targets {
		sendTo(userID, envelope)
	}
}

func sendTo(userID uuid.UUID, envelope Envelope) {
	clientsMu.RLock()
	conn, ok := clients[userID]
	clientsMu.RUnlock()
	if !ok {
		return
	}

	if err := conn.WriteJSON(envelope); err != nil {
		log.Printf("Error sending event to client %s: %v", userID, err)
		conn.Close()
		clientsMu.Lock()
		if current, ok := clients[userID]; ok && current == conn {
			delete(clients, userID)
		}
		clientsMu.Unlock()
	}
}
