package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	config "github.com/rgoswami08/shg_sangam/configs"
	"github.com/rgoswami08/shg_sangam/database"
	"github.com/rgoswami08/shg_sangam/models"
	"github.com/rgoswami08/shg_sangam/services"
	"github.com/rgoswami08/shg_sangam/websocket"
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type SendMessageRequest struct {
	Content     string `json:"content" validate:"required"`
	RecipientID string `json:"recipient_id" validate:"required,uuid"`
}

func fetchUserMessages(userID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := database.DB.
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("timestamp asc").
		Find(&messages).Error
	return messages, err
}

// GetMessages returns every message the caller sent or received, oldest
// first. The client merges realtime events into this set and re-sorts.
func GetMessages(c *fiber.Ctx) error {
	userID, _ := uuid.Parse(currentUserID(c))

	messages, err := fetchUserMessages(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch messages"})
	}
	return c.JSON(messages)
}

// GetConversations derives the caller's conversation list from the flat
// message set: one entry per counterparty, newest first, with unread counts.
func GetConversations(c *fiber.Ctx) error {
	userID, _ := uuid.Parse(currentUserID(c))

	messages, err := fetchUserMessages(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch messages"})
	}
	return c.JSON(services.BuildConversations(messages, userID))
}

// GetThread returns the ordered direct-message thread with one counterparty.
func GetThread(c *fiber.Ctx) error {
	userID, _ := uuid.Parse(currentUserID(c))
	counterpartyID, err := uuid.Parse(c.Params("counterpartyId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid counterparty ID"})
	}

	messages, err := fetchUserMessages(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch messages"})
	}
	return c.JSON(services.ThreadMessages(messages, userID, counterpartyID))
}

// SendMessage validates and persists an outgoing message. The response
// acknowledges the write; display happens through the realtime echo, which
// clients dedupe by message id.
func SendMessage(c *fiber.Ctx) error {
	userID, _ := uuid.Parse(currentUserID(c))

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if strings.TrimSpace(req.Content) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Message content cannot be empty"})
	}
	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil || recipientID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A recipient must be selected"})
	}

	message := models.Message{
		Content:     req.Content,
		SenderID:    userID,
		RecipientID: &recipientID,
		Timestamp:   time.Now().UTC(),
		Read:        false,
	}
	if err := database.DB.Create(&message).Error; err != nil {
		log.Printf("Failed to save message from %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send message"})
	}

	websocket.Broadcast <- &websocket.MessageEvent{Type: "insert", Message: &message}

	return c.Status(fiber.StatusCreated).JSON(message)
}

// MarkThreadRead flips read=true on every unread message from the
// counterparty in one batched update. No unread messages is a no-op, so
// repeated calls are idempotent. Read-state is advisory: a failed update
// is logged and surfaced, never retried.
func MarkThreadRead(c *fiber.Ctx) error {
	userID, _ := uuid.Parse(currentUserID(c))
	counterpartyID, err := uuid.Parse(c.Params("counterpartyId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid counterparty ID"})
	}

	var unread []models.Message
	if err := database.DB.
		Where("sender_id = ? AND recipient_id = ? AND read = ?", counterpartyID, userID, false).
		Find(&unread).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load thread"})
	}

	ids := services.UnreadMessageIDs(unread, userID, counterpartyID)
	if len(ids) == 0 {
		return c.JSON(fiber.Map{"updated": 0})
	}

	if err := database.DB.Model(&models.Message{}).
		Where("id IN ?", ids).
		Update("read", true).Error; err != nil {
		log.Printf("Failed to mark thread %s read for %s: %v", counterpartyID, userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to mark messages read"})
	}

	// Update events let the sender's client clear its delivered-unread state.
	for i := range unread {
		unread[i].Read = true
		websocket.Broadcast <- &websocket.MessageEvent{Type: "update", Message: &unread[i]}
	}

	return c.JSON(fiber.Map{"updated": len(ids)})
}

// ServeWs authenticates the connection with a first-frame auth message,
// registers it with the hub, and then relays message sends and typing
// activity until the peer disconnects.
func ServeWs(c *websocketcontrib.Conn) {
	type AuthMessage struct {
		Type  string `json:"type"`
		Token string `json:"token"`
	}
	var authMsg AuthMessage
	if err := c.ReadJSON(&authMsg); err != nil || authMsg.Type != "auth" {
		log.Printf("WebSocket auth failed: invalid or missing auth message: %v", err)
		_ = c.WriteJSON(fiber.Map{"error": "Invalid or missing auth message"})
		c.Close()
		return
	}

	claims, err := parseToken(authMsg.Token)
	if err != nil {
		log.Printf("WebSocket auth failed: invalid token: %v", err)
		_ = c.WriteJSON(fiber.Map{"error": "Invalid token"})
		c.Close()
		return
	}

	userID, err := uuid.Parse(claims["user_id"].(string))
	if err != nil {
		log.Printf("WebSocket auth failed: invalid user_id %v: %v", claims["user_id"], err)
		_ = c.WriteJSON(fiber.Map{"error": "Invalid user ID"})
		c.Close()
		return
	}

	typing := websocket.NewTypingNotifier(0, func(isTyping bool, typingTo string) {
		websocket.NotifyTyping(userID.String(), isTyping, typingTo)
	})
	client := &websocket.Client{UserID: userID, Conn: c, Typing: typing}
	websocket.Register <- client
	defer func() {
		typing.Stop()
		websocket.Unregister <- client
		c.Close()
	}()

	for {
		var frame struct {
			Type        string `json:"type"`
			Content     string `json:"content"`
			RecipientID string `json:"recipient_id"`
			TypingTo    string `json:"typing_to"`
		}
		if err := c.ReadJSON(&frame); err != nil {
			if websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseAbnormalClosure) {
				log.Printf("WebSocket closed for client %s: %v", userID, err)
			} else {
				log.Printf("WebSocket read error for client %s: %v", userID, err)
			}
			return
		}

		switch frame.Type {
		case "message":
			recipientID, err := uuid.Parse(frame.RecipientID)
			if err != nil || strings.TrimSpace(frame.Content) == "" {
				_ = c.WriteJSON(fiber.Map{"error": "Message needs content and a recipient"})
				continue
			}
			message := models.Message{
				Content:     frame.Content,
				SenderID:    userID,
				RecipientID: &recipientID,
				Timestamp:   time.Now().UTC(),
				Read:        false,
			}
			if err := database.DB.Create(&message).Error; err != nil {
				log.Printf("Failed to save message for client %s: %v", userID, err)
				_ = c.WriteJSON(fiber.Map{"error": "Failed to save message"})
				continue
			}
			websocket.Broadcast <- &websocket.MessageEvent{Type: "insert", Message: &message}
		case "typing":
			if frame.TypingTo == "" {
				typing.Stop()
				continue
			}
			typing.Keystroke(frame.TypingTo)
		default:
			_ = c.WriteJSON(fiber.Map{"error": "Unsupported frame type"})
		}
	}
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.Config("JWT_SECRET")), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
