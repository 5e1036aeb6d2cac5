package payments

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	config "github.com/rgoswami08/shg_sangam/configs"
)

const defaultStripeAPIBase = "https://api.stripe.com"

type CheckoutSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentStatus string            `json:"payment_status"`
	Metadata      map[string]string `json:"metadata"`

	// payment_intent arrives as a string id, an expanded object, or null
	// depending on session state and the expand parameter.
	PaymentIntent json.RawMessage `json:"payment_intent"`
}

// PaymentIntentID extracts the payment intent id in whichever shape the
// API returned it. Empty when the intent does not exist yet.
func (s *CheckoutSession) PaymentIntentID() string {
	raw := strings.TrimSpace(string(s.PaymentIntent))
	if raw == "" || raw == "null" {
		return ""
	}
	if strings.HasPrefix(raw, "\"") {
		var id string
		if err := json.Unmarshal(s.PaymentIntent, &id); err == nil {
			return id
		}
		return ""
	}
	var intent struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(s.PaymentIntent, &intent); err == nil {
		return intent.ID
	}
	return ""
}

type CheckoutParams struct {
	CustomerEmail      string
	ProductName        string
	ProductDescription string
	Currency           string
	UnitAmount         int64 // smallest currency unit (paise for INR)
	SuccessURL         string
	CancelURL          string
	ClientReferenceID  string
	Metadata           map[string]string
}

func stripeAPIBase() string {
	if base := config.Config("STRIPE_API_BASE_URL"); base != "" {
		return base
	}
	return defaultStripeAPIBase
}

// CreateCheckoutSession opens a hosted Stripe Checkout session for a
// one-off card payment and returns its id and redirect URL.
func CreateCheckoutSession(params CheckoutParams) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[]", "card")
	form.Set("line_items[0][price_data][currency]", strings.ToLower(params.Currency))
	form.Set("line_items[0][price_data][product_data][name]", params.ProductName)
	if params.ProductDescription != "" {
		form.Set("line_items[0][price_data][product_data][description]", params.ProductDescription)
	}
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.UnitAmount, 10))
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	if params.CustomerEmail != "" {
		form.Set("customer_email", params.CustomerEmail)
	}
	if params.ClientReferenceID != "" {
		form.Set("client_reference_id", params.ClientReferenceID)
	}
	for key, value := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", key), value)
	}

	req, err := http.NewRequest("POST", fmt.Sprintf("%s/v1/checkout/sessions", stripeAPIBase()), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(config.Config("STRIPE_SECRET_KEY"), "")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to create checkout session: %s", string(respBody))
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, err
	}
	return &session, nil
}

// RetrieveCheckoutSession fetches a session with its payment intent
// expanded, for payment verification.
func RetrieveCheckoutSession(sessionID string) (*CheckoutSession, error) {
	endpoint := fmt.Sprintf("%s/v1/checkout/sessions/%s?expand[]=payment_intent", stripeAPIBase(), url.PathEscape(sessionID))
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(config.Config("STRIPE_SECRET_KEY"), "")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to retrieve checkout session: %s", string(respBody))
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, err
	}
	return &session, nil
}
