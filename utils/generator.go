package utils

import (
	"math/rand"
	"time"

	"github.com/rgoswami08/shg_sangam/models"
	"gorm.io/gorm"
)

const transferReferenceLength = 10
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateUniqueTransferReference produces a short human-quotable code
// for a fund transfer, retrying until it is unused.
func GenerateUniqueTransferReference(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, transferReferenceLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		code := string(b)

		var txn models.Transaction
		err := tx.Where("reference = ?", code).First(&txn).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return code, nil
			}
			return "", err
		}
	}
}
