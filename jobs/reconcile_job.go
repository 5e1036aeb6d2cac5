package jobs

import (
	"log"
	"time"

	"github.com/rgoswami08/shg_sangam/database"
	"github.com/rgoswami08/shg_sangam/models"
	"github.com/rgoswami08/shg_sangam/payments"
	"github.com/rgoswami08/shg_sangam/services"
)

// ReconcilePendingTransfers re-checks card transfers whose verify call
// never arrived (closed tab, dropped connection) against the payment
// provider, so a pending row cannot stay stale forever.
func ReconcilePendingTransfers() {
	log.Println("Running job: ReconcilePendingTransfers...")

	cutoff := time.Now().Add(-10 * time.Minute)

	var stale []models.Transaction
	err := database.DB.
		Where("status = ? AND payment_method = ? AND checkout_session_id IS NOT NULL AND created_at < ?",
			"pending", "stripe_card", cutoff).
		Limit(50).
		Find(&stale).Error
	if err != nil {
		log.Printf("Error loading pending transfers: %v", err)
		return
	}

	if len(stale) == 0 {
		return
	}

	for _, txn := range stale {
		session, err := payments.RetrieveCheckoutSession(*txn.CheckoutSessionID)
		if err != nil {
			log.Printf("Could not retrieve session %s for transfer %s: %v", *txn.CheckoutSessionID, txn.Reference, err)
			continue
		}

		switch session.PaymentStatus {
		case "paid":
			providerTxnID := session.PaymentIntentID()
			if providerTxnID == "" {
				providerTxnID = session.ID
			}
			txn.Status = "completed"
			txn.TransactionID = &providerTxnID
			if err := database.DB.Save(&txn).Error; err != nil {
				log.Printf("Failed to complete reconciled transfer %s: %v", txn.Reference, err)
				continue
			}
			log.Printf("✅ Reconciled transfer %s as completed", txn.Reference)
			go services.GenerateTransferReceipt(txn)
		case "unpaid":
			// Checkout sessions expire after 24h; mark abandoned ones failed.
			if txn.CreatedAt.Before(time.Now().Add(-24 * time.Hour)) {
				txn.Status = "failed"
				if err := database.DB.Save(&txn).Error; err != nil {
					log.Printf("Failed to expire transfer %s: %v", txn.Reference, err)
				}
			}
		}
	}
}
