package handlers

import "testing"

func TestValidateTransferRequest(t *testing.T) {
	cases := []struct {
		name string
		req  FundTransferRequest
		want string
	}{
		{
			name: "valid transfer",
			req:  FundTransferRequest{Amount: 500, SenderShgID: "shg-1", RecipientShgID: "shg-2", Purpose: "seed capital"},
			want: "",
		},
		{
			name: "exact minimum passes",
			req:  FundTransferRequest{Amount: 50, SenderShgID: "shg-1", RecipientShgID: "shg-2"},
			want: "",
		},
		{
			name: "zero amount",
			req:  FundTransferRequest{SenderShgID: "shg-1", RecipientShgID: "shg-2"},
			want: "Missing required fields: amount, senderShgId, recipientShgId",
		},
		{
			name: "missing sender",
			req:  FundTransferRequest{Amount: 500, RecipientShgID: "shg-2"},
			want: "Missing required fields: amount, senderShgId, recipientShgId",
		},
		{
			name: "missing recipient",
			req:  FundTransferRequest{Amount: 500, SenderShgID: "shg-1"},
			want: "Missing required fields: amount, senderShgId, recipientShgId",
		},
		{
			name: "below processor minimum",
			req:  FundTransferRequest{Amount: 10, SenderShgID: "shg-1", RecipientShgID: "shg-2"},
			want: "Minimum amount is ₹50 due to Stripe minimum charge.",
		},
		{
			name: "self transfer",
			req:  FundTransferRequest{Amount: 500, SenderShgID: "shg-1", RecipientShgID: "shg-1"},
			want: "Cannot transfer funds to the same SHG",
		},
		{
			name: "minimum checked before self transfer",
			req:  FundTransferRequest{Amount: 10, SenderShgID: "shg-1", RecipientShgID: "shg-1"},
			want: "Minimum amount is ₹50 due to Stripe minimum charge.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := validateTransferRequest(tc.req); got != tc.want {
				t.Errorf("validateTransferRequest() = %q, want %q", got, tc.want)
			}
		})
	}
}
