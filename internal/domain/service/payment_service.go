package service

import "context"

// PaymentLinkRequest carries everything the checkout provider needs to
// build a hosted payment page.
type PaymentLinkRequest struct {
	OrderCode   int64
	Amount      int64
	Description string
	BuyerName   string
	BuyerEmail  string
	ReturnURL   string
	CancelURL   string
}

// PaymentWebhook is the provider's payment-result callback payload.
type PaymentWebhook struct {
	Code      string             `json:"code"`
	Desc      string             `json:"desc"`
	Success   bool               `json:"success"`
	Data      PaymentWebhookData `json:"data"`
	Signature string             `json:"signature"`
}

// PaymentWebhookData is the signed portion of the webhook payload.
type PaymentWebhookData struct {
	OrderCode   int64  `json:"orderCode"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	Reference   string `json:"reference"`
	Currency    string `json:"currency"`
}

// PaymentService is the narrow contract with the external checkout provider.
// The provider's protocol stays opaque to the rest of the system.
type PaymentService interface {
	// CreatePaymentLink registers an order with the provider and returns the
	// hosted checkout URL.
	CreatePaymentLink(ctx context.Context, req PaymentLinkRequest) (string, error)

	// VerifyWebhook checks the webhook signature against the shared checksum
	// key. It returns an error for a missing or mismatched signature.
	VerifyWebhook(webhook *PaymentWebhook) error
}
