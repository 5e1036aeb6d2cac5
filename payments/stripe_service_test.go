package payments

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateCheckoutSessionEncodesRequest(t *testing.T) {
	var gotForm map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/sessions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if user, _, ok := r.BasicAuth(); !ok || user != "sk_test_secret" {
			t.Errorf("expected secret key as basic auth user, got %q", user)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotForm = r.PostForm
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":             "cs_test_123",
			"url":            "https://checkout.example/cs_test_123",
			"payment_status": "unpaid",
		})
	}))
	defer server.Close()

	t.Setenv("STRIPE_API_BASE_URL", server.URL)
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_secret")

	session, err := CreateCheckoutSession(CheckoutParams{
		CustomerEmail:      "leader@example.org",
		ProductName:        "Fund Transfer: Ujjwala → Pragati",
		ProductDescription: "seed capital",
		Currency:           "INR",
		UnitAmount:         12550,
		SuccessURL:         "https://app.example/funds?success=true",
		CancelURL:          "https://app.example/funds?cancelled=true",
		Metadata:           map[string]string{"senderShgId": "shg-1", "amount": "125.5"},
	})
	if err != nil {
		t.Fatalf("CreateCheckoutSession: %v", err)
	}

	if session.ID != "cs_test_123" || session.URL != "https://checkout.example/cs_test_123" {
		t.Fatalf("unexpected session decoded: %+v", session)
	}

	expectField := func(key, want string) {
		t.Helper()
		values, ok := gotForm[key]
		if !ok || len(values) == 0 || values[0] != want {
			t.Fatalf("form field %q = %v, want %q", key, values, want)
		}
	}
	expectField("mode", "payment")
	expectField("line_items[0][price_data][currency]", "inr")
	expectField("line_items[0][price_data][unit_amount]", "12550")
	expectField("line_items[0][quantity]", "1")
	expectField("customer_email", "leader@example.org")
	expectField("metadata[senderShgId]", "shg-1")
	expectField("metadata[amount]", "125.5")
}

func TestCreateCheckoutSessionProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Amount must be at least 50 INR"}}`))
	}))
	defer server.Close()

	t.Setenv("STRIPE_API_BASE_URL", server.URL)
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_secret")

	_, err := CreateCheckoutSession(CheckoutParams{Currency: "INR", UnitAmount: 100})
	if err == nil {
		t.Fatal("expected error from provider rejection")
	}
}

func TestRetrieveCheckoutSessionExpandsPaymentIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/sessions/cs_test_9" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("expand[]"); got != "payment_intent" {
			t.Errorf("expected payment_intent expand, got %q", got)
		}
		_, _ = w.Write([]byte(`{
			"id": "cs_test_9",
			"payment_status": "paid",
			"payment_intent": {"id": "pi_42"},
			"metadata": {"senderShgId": "shg-1"}
		}`))
	}))
	defer server.Close()

	t.Setenv("STRIPE_API_BASE_URL", server.URL)
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_secret")

	session, err := RetrieveCheckoutSession("cs_test_9")
	if err != nil {
		t.Fatalf("RetrieveCheckoutSession: %v", err)
	}
	if session.PaymentStatus != "paid" {
		t.Fatalf("expected paid status, got %q", session.PaymentStatus)
	}
	if got := session.PaymentIntentID(); got != "pi_42" {
		t.Fatalf("expected expanded intent id pi_42, got %q", got)
	}
	if session.Metadata["senderShgId"] != "shg-1" {
		t.Fatalf("expected metadata to survive decoding, got %v", session.Metadata)
	}
}

func TestPaymentIntentIDShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"expanded object", `{"payment_intent": {"id": "pi_1"}}`, "pi_1"},
		{"plain id string", `{"payment_intent": "pi_2"}`, "pi_2"},
		{"null", `{"payment_intent": null}`, ""},
		{"absent", `{}`, ""},
	}

	for _, tc := range cases {
		var session CheckoutSession
		if err := json.Unmarshal([]byte(tc.raw), &session); err != nil {
			t.Fatalf("%s: unmarshal: %v", tc.name, err)
		}
		if got := session.PaymentIntentID(); got != tc.want {
			t.Fatalf("%s: PaymentIntentID() = %q, want %q", tc.name, got, tc.want)
		}
	}
}
