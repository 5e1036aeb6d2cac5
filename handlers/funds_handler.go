package handlers

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"

	"github.com/rgoswami08/shg_sangam/database"
	"github.com/rgoswami08/shg_sangam/models"
	"github.com/rgoswami08/shg_sangam/payments"
	"github.com/rgoswami08/shg_sangam/notifications"
	"github.com/rgoswami08/shg_sangam/services"
	"github.com/rgoswami08/shg_sangam/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// minTransferINR is the floor imposed by the card processor's minimum
// charge in INR.
const minTransferINR = 50

type FundTransferRequest struct {
	Amount         float64 `json:"amount"`
	SenderShgID    string  `json:"senderShgId"`
	RecipientShgID string  `json:"recipientShgId"`
	Purpose        string  `json:"purpose"`
}

type VerifyPaymentRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}

// validateTransferRequest applies the bridge's input rules. A non-empty
// return is a user-facing validation message, delivered with HTTP 200 per
// the bridge contract; expected rejections are not error statuses.
func validateTransferRequest(req FundTransferRequest) string {
	if req.Amount == 0 || req.SenderShgID == "" || req.RecipientShgID == "" {
		return "Missing required fields: amount, senderShgId, recipientShgId"
	}
	if req.Amount < minTransferINR {
		return fmt.Sprintf("Minimum amount is ₹%d due to Stripe minimum charge.", minTransferINR)
	}
	if req.SenderShgID == req.RecipientShgID {
		return "Cannot transfer funds to the same SHG"
	}
	return ""
}

// CreateFundTransfer validates a transfer, verifies the caller belongs to
// the sending SHG, opens a hosted checkout session, and records a pending
// transaction keyed by that session.
func CreateFundTransfer(c *fiber.Ctx) error {
	userID, _ := uuid.Parse(currentUserID(c))

	var req FundTransferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if msg := validateTransferRequest(req); msg != "" {
		return c.JSON(fiber.Map{"error": msg})
	}

	// Authorization is part of the validation phase: rejected before any
	// provider call.
	var membership models.SHGMember
	if err := database.DB.
		Where("user_id = ? AND shg_id = ?", userID, req.SenderShgID).
		First(&membership).Error; err != nil {
		return c.JSON(fiber.Map{"error": "You are not authorized to send funds from this SHG"})
	}

	var shgs []models.SHG
	if err := database.DB.Where("id IN ?", []string{req.SenderShgID, req.RecipientShgID}).Find(&shgs).Error; err != nil || len(shgs) != 2 {
		return c.JSON(fiber.Map{"error": "Invalid SHG IDs provided"})
	}
	var senderShg, recipientShg models.SHG
	for _, shg := range shgs {
		if shg.ID.String() == req.SenderShgID {
			senderShg = shg
		} else {
			recipientShg = shg
		}
	}

	var caller models.User
	if err := database.DB.Where("id = ?", userID).First(&caller).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load user"})
	}

	origin := c.Get("Origin")
	purpose := req.Purpose
	if purpose == "" {
		purpose = "SHG Fund Transfer"
	}

	session, err := payments.CreateCheckoutSession(payments.CheckoutParams{
		CustomerEmail:      caller.Email,
		ProductName:        fmt.Sprintf("Fund Transfer: %s → %s", senderShg.Name, recipientShg.Name),
		ProductDescription: purpose,
		Currency:           "INR",
		UnitAmount:         int64(math.Round(req.Amount * 100)), // paise
		SuccessURL:         origin + "/funds?success=true&session_id={CHECKOUT_SESSION_ID}",
		CancelURL:          origin + "/funds?cancelled=true",
		Metadata: map[string]string{
			"senderShgId":    req.SenderShgID,
			"recipientShgId": req.RecipientShgID,
			"userId":         userID.String(),
			"purpose":        req.Purpose,
			"amount":         strconv.FormatFloat(req.Amount, 'f', -1, 64),
		},
	})
	if err != nil {
		log.Printf("🔥 Stripe checkout session creation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create checkout session"})
	}

	reference, err := utils.GenerateUniqueTransferReference(database.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create transfer reference"})
	}

	sessionID := session.ID
	txn := models.Transaction{
		Amount:            req.Amount,
		Currency:          "INR",
		SenderShgID:       senderShg.ID,
		RecipientShgID:    recipientShg.ID,
		Purpose:           &req.Purpose,
		Status:            "pending",
		PaymentMethod:     "stripe_card",
		Reference:         reference,
		CheckoutSessionID: &sessionID,
		InitiatedBy:       userID,
	}
	if err := database.DB.Create(&txn).Error; err != nil {
		log.Printf("🔥 Failed to record pending transaction for session %s: %v", session.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record transaction"})
	}

	return c.JSON(fiber.Map{"url": session.URL, "sessionId": session.ID})
}

// VerifyPayment retrieves the checkout session and, when paid, completes
// the matching transaction. Safe to call repeatedly: an already completed
// transaction short-circuits.
func VerifyPayment(c *fiber.Ctx) error {
	var req VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Session ID is required"})
	}

	var txn models.Transaction
	err := database.DB.Where("checkout_session_id = ?", req.SessionID).First(&txn).Error
	if err == nil && txn.Status == "completed" {
		return c.JSON(fiber.Map{"success": true, "transactionId": txn.ID.String(), "paymentStatus": "paid"})
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load transaction"})
	}
	missing := errors.Is(err, gorm.ErrRecordNotFound)

	session, err := payments.RetrieveCheckoutSession(req.SessionID)
	if err != nil {
		log.Printf("🔥 Stripe session retrieve failed for %s: %v", req.SessionID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to verify payment"})
	}

	if session.PaymentStatus != "paid" {
		return c.JSON(fiber.Map{"success": false, "paymentStatus": session.PaymentStatus})
	}

	providerTxnID := session.PaymentIntentID()
	if providerTxnID == "" {
		providerTxnID = session.ID
	}

	if missing {
		// Session created outside this instance: rebuild the row from the
		// session metadata the bridge always attaches.
		rebuilt, buildErr := transactionFromSession(session)
		if buildErr != nil {
			log.Printf("🔥 Cannot rebuild transaction for session %s: %v", req.SessionID, buildErr)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create transaction"})
		}
		txn = *rebuilt
	}

	txn.Status = "completed"
	txn.TransactionID = &providerTxnID
	if err := database.DB.Save(&txn).Error; err != nil {
		log.Printf("🔥 Failed to complete transaction for session %s: %v", req.SessionID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create transaction"})
	}

	go notifyTransferCompleted(txn)
	go services.GenerateTransferReceipt(txn)

	return c.JSON(fiber.Map{"success": true, "transactionId": txn.ID.String(), "paymentStatus": session.PaymentStatus})
}

func transactionFromSession(session *payments.CheckoutSession) (*models.Transaction, error) {
	senderID, err := uuid.Parse(session.Metadata["senderShgId"])
	if err != nil {
		return nil, fmt.Errorf("bad senderShgId: %w", err)
	}
	recipientID, err := uuid.Parse(session.Metadata["recipientShgId"])
	if err != nil {
		return nil, fmt.Errorf("bad recipientShgId: %w", err)
	}
	userID, err := uuid.Parse(session.Metadata["userId"])
	if err != nil {
		return nil, fmt.Errorf("bad userId: %w", err)
	}
	amount, err := strconv.ParseFloat(session.Metadata["amount"], 64)
	if err != nil {
		return nil, fmt.Errorf("bad amount: %w", err)
	}

	reference, err := utils.GenerateUniqueTransferReference(database.DB)
	if err != nil {
		return nil, err
	}

	purpose := session.Metadata["purpose"]
	sessionID := session.ID
	return &models.Transaction{
		Amount:            amount,
		Currency:          "INR",
		SenderShgID:       senderID,
		RecipientShgID:    recipientID,
		Purpose:           &purpose,
		Status:            "pending",
		PaymentMethod:     "stripe_card",
		Reference:         reference,
		CheckoutSessionID: &sessionID,
		InitiatedBy:       userID,
	}, nil
}

func notifyTransferCompleted(txn models.Transaction) {
	var senderShg, recipientShg models.SHG
	if err := database.DB.First(&senderShg, "id = ?", txn.SenderShgID).Error; err != nil {
		log.Printf("Skipping transfer notification, sender SHG missing: %v", err)
		return
	}
	if err := database.DB.First(&recipientShg, "id = ?", txn.RecipientShgID).Error; err != nil {
		log.Printf("Skipping transfer notification, recipient SHG missing: %v", err)
		return
	}

	body := fmt.Sprintf(
		"<h1>Fund Transfer Completed</h1><p>₹%.2f has been transferred from <b>%s</b> to <b>%s</b>.</p><p>Reference: %s</p>",
		txn.Amount, senderShg.Name, recipientShg.Name, txn.Reference,
	)
	if senderShg.ContactEmail != nil {
		notifications.SendEmail(senderShg.LeaderName, *senderShg.ContactEmail, "Fund Transfer Completed", body)
	}
	if recipientShg.ContactEmail != nil {
		notifications.SendEmail(recipientShg.LeaderName, *recipientShg.ContactEmail, "Funds Received", body)
	}
}

// ListTransactions returns the transaction history, newest first, with
// both SHG names resolved.
func ListTransactions(c *fiber.Ctx) error {
	var transactions []models.Transaction
	if err := database.DB.
		Preload("SenderShg").
		Preload("RecipientShg").
		Order("created_at desc").
		Find(&transactions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch transactions"})
	}
	return c.JSON(transactions)
}

// CreateDirectTransfer records an offline bank transfer as a pending
// transaction, outside the card checkout flow.
func CreateDirectTransfer(c *fiber.Ctx) error {
	userID, _ := uuid.Parse(currentUserID(c))

	var req FundTransferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if req.Amount <= 0 || req.SenderShgID == "" || req.RecipientShgID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please fill in all required fields"})
	}

	var membership models.SHGMember
	if err := database.DB.
		Where("user_id = ? AND shg_id = ?", userID, req.SenderShgID).
		First(&membership).Error; err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not authorized to send funds from this SHG"})
	}

	senderID, err := uuid.Parse(req.SenderShgID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid sender SHG ID"})
	}
	recipientID, err := uuid.Parse(req.RecipientShgID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid recipient SHG ID"})
	}

	reference, err := utils.GenerateUniqueTransferReference(database.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create transfer reference"})
	}

	txn := models.Transaction{
		Amount:         req.Amount,
		Currency:       "INR",
		SenderShgID:    senderID,
		RecipientShgID: recipientID,
		Purpose:        &req.Purpose,
		Status:         "pending",
		PaymentMethod:  "bank_transfer",
		Reference:      reference,
		InitiatedBy:    userID,
	}
	if err := database.DB.Create(&txn).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to initiate fund transfer"})
	}

	return c.Status(fiber.StatusCreated).JSON(txn)
}
