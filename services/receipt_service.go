package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	config "github.com/rgoswami08/shg_sangam/configs"
	"github.com/rgoswami08/shg_sangam/database"
	"github.com/rgoswami08/shg_sangam/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Georgia, serif; margin: 48px; color: #222; }
  .header { border-bottom: 3px solid #2e7d32; padding-bottom: 12px; }
  .amount { font-size: 32px; color: #2e7d32; margin: 24px 0; }
  table { width: 100%; border-collapse: collapse; margin-top: 16px; }
  td { padding: 8px 4px; border-bottom: 1px solid #ddd; }
  td:first-child { color: #666; width: 40%; }
</style>
</head>
<body>
  <div class="header">
    <h1>SHG Sangam — Fund Transfer Receipt</h1>
  </div>
  <div class="amount">₹{{printf "%.2f" .Amount}}</div>
  <table>
    <tr><td>Reference</td><td>{{.Reference}}</td></tr>
    <tr><td>From</td><td>{{.SenderName}}</td></tr>
    <tr><td>To</td><td>{{.RecipientName}}</td></tr>
    <tr><td>Purpose</td><td>{{.Purpose}}</td></tr>
    <tr><td>Date</td><td>{{.Date}}</td></tr>
    <tr><td>Status</td><td>Completed</td></tr>
  </table>
</body>
</html>`

// GenerateTransferReceipt renders a PDF receipt for a completed transfer
// and uploads it to Cloudinary. Best effort: a failure is logged and the
// transfer stays completed without a receipt link.
func GenerateTransferReceipt(txn models.Transaction) {
	var senderShg, recipientShg models.SHG
	if err := database.DB.First(&senderShg, "id = ?", txn.SenderShgID).Error; err != nil {
		log.Printf("🔥 Receipt skipped, sender SHG missing: %v", err)
		return
	}
	if err := database.DB.First(&recipientShg, "id = ?", txn.RecipientShgID).Error; err != nil {
		log.Printf("🔥 Receipt skipped, recipient SHG missing: %v", err)
		return
	}

	htmlData, err := renderReceiptHTML(txn, senderShg.Name, recipientShg.Name)
	if err != nil {
		log.Printf("🔥 Failed to render receipt HTML: %v", err)
		return
	}

	pdfBytes, err := printToPDF(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt PDF: %v", err)
		return
	}

	uploadURL, err := uploadReceipt(pdfBytes, txn.Reference)
	if err != nil {
		log.Printf("🔥 Failed to upload receipt to Cloudinary: %v", err)
		return
	}

	log.Printf("✅ Generated receipt for transfer %s: %s", txn.Reference, uploadURL)
}

func renderReceiptHTML(txn models.Transaction, senderName, recipientName string) (string, error) {
	tmpl, err := template.New("receipt").Parse(receiptTemplate)
	if err != nil {
		return "", err
	}

	purpose := "SHG Fund Transfer"
	if txn.Purpose != nil && *txn.Purpose != "" {
		purpose = *txn.Purpose
	}

	data := struct {
		Amount        float64
		Reference     string
		SenderName    string
		RecipientName string
		Purpose       string
		Date          string
	}{
		Amount:        txn.Amount,
		Reference:     txn.Reference,
		SenderName:    senderName,
		RecipientName: recipientName,
		Purpose:       purpose,
		Date:          time.Now().Format("January 2, 2006"),
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func printToPDF(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadReceipt(fileBytes []byte, reference string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	publicID := fmt.Sprintf("receipt_%s", reference)
	result, err := cld.Upload.Upload(context.Background(), bytes.NewReader(fileBytes), uploader.UploadParams{
		Folder:       "shg_sangam_receipts",
		PublicID:     publicID,
		ResourceType: "raw",
	})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}
