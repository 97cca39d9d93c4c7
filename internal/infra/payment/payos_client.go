// Package payment implements the checkout-provider contract against the
// PayOS HTTP API.
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"eduvn/config"
	domainerrors "eduvn/internal/domain/errors"
	"eduvn/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	defaultBaseURL        = "https://api-merchant.payos.vn"
	paymentRequestsPath   = "/v2/payment-requests"
	defaultRequestTimeout = 10 * time.Second
)

// payOSClient implements service.PaymentService against the PayOS REST API.
type payOSClient struct {
	baseURL     string
	clientID    string
	apiKey      string
	checksumKey string
	httpClient  *http.Client
	logger      *slog.Logger
}

// NewPayOSClient is the constructor for payOSClient.
func NewPayOSClient(cfg *config.Config, logger *slog.Logger) (service.PaymentService, error) {
	if cfg.PayOS == nil || cfg.PayOS.ClientID == "" || cfg.PayOS.APIKey == "" || cfg.PayOS.ChecksumKey == "" {
		return nil, errors.New("payos credentials must be provided")
	}

	baseURL := cfg.PayOS.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &payOSClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		clientID:    cfg.PayOS.ClientID,
		apiKey:      cfg.PayOS.APIKey,
		checksumKey: cfg.PayOS.ChecksumKey,
		httpClient:  &http.Client{Timeout: defaultRequestTimeout},
		logger:      logger,
	}, nil
}

type createLinkRequest struct {
	OrderCode   int64  `json:"orderCode"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	BuyerName   string `json:"buyerName,omitempty"`
	BuyerEmail  string `json:"buyerEmail,omitempty"`
	ReturnURL   string `json:"returnUrl"`
	CancelURL   string `json:"cancelUrl"`
	Signature   string `json:"signature"`
}

type createLinkResponse struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
	Data struct {
		CheckoutURL string `json:"checkoutUrl"`
	} `json:"data"`
}

// CreatePaymentLink registers an order with the provider and returns the
// hosted checkout URL.
func (c *payOSClient) CreatePaymentLink(ctx context.Context, req service.PaymentLinkRequest) (string, error) {
	// The create-link signature covers these five fields, sorted by key.
	signature := c.sign(map[string]string{
		"amount":      fmt.Sprintf("%d", req.Amount),
		"cancelUrl":   req.CancelURL,
		"description": req.Description,
		"orderCode":   fmt.Sprintf("%d", req.OrderCode),
		"returnUrl":   req.ReturnURL,
	})

	body, err := json.Marshal(createLinkRequest{
		OrderCode:   req.OrderCode,
		Amount:      req.Amount,
		Description: req.Description,
		BuyerName:   req.BuyerName,
		BuyerEmail:  req.BuyerEmail,
		ReturnURL:   req.ReturnURL,
		CancelURL:   req.CancelURL,
		Signature:   signature,
	})
	if err != nil {
		return "", errors.Wrap(err, "marshal payment link request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+paymentRequestsPath, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "build payment link request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-client-id", c.clientID)
	httpReq.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", domainerrors.ErrPaymentProviderFailed.WrapMessage(err.Error())
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", domainerrors.ErrPaymentProviderFailed.WrapMessage(err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("payment provider returned non-OK status",
			slog.Int("status", resp.StatusCode),
			slog.Int64("orderCode", req.OrderCode))

		return "", domainerrors.ErrPaymentProviderFailed.WrapMessage(fmt.Sprintf("status %d", resp.StatusCode))
	}

	var linkResp createLinkResponse
	if err := json.Unmarshal(respBody, &linkResp); err != nil {
		return "", domainerrors.ErrPaymentProviderFailed.WrapMessage(err.Error())
	}

	// "00" is the provider's success code.
	if linkResp.Code != "00" || linkResp.Data.CheckoutURL == "" {
		c.logger.Error("payment provider rejected order",
			slog.String("code", linkResp.Code),
			slog.String("desc", linkResp.Desc),
			slog.Int64("orderCode", req.OrderCode))

		return "", domainerrors.ErrPaymentProviderFailed.WrapMessage(linkResp.Desc)
	}

	return linkResp.Data.CheckoutURL, nil
}

// VerifyWebhook checks the webhook signature against the shared checksum key.
func (c *payOSClient) VerifyWebhook(webhook *service.PaymentWebhook) error {
	if webhook == nil || webhook.Signature == "" {
		return domainerrors.ErrWebhookSignatureInvalid
	}

	expected := c.sign(map[string]string{
		"amount":      fmt.Sprintf("%d", webhook.Data.Amount),
		"currency":    webhook.Data.Currency,
		"description": webhook.Data.Description,
		"orderCode":   fmt.Sprintf("%d", webhook.Data.OrderCode),
		"reference":   webhook.Data.Reference,
	})

	if !hmac.Equal([]byte(expected), []byte(webhook.Signature)) {
		return domainerrors.ErrWebhookSignatureInvalid
	}

	return nil
}

// sign builds the provider's canonical "key=value&key=value" string over the
// alphabetically sorted fields and returns its hex HMAC-SHA256.
func (c *payOSClient) sign(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+fields[key])
	}

	mac := hmac.New(sha256.New, []byte(c.checksumKey))
	mac.Write([]byte(strings.Join(pairs, "&")))

	return hex.EncodeToString(mac.Sum(nil))
}
