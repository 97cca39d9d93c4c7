package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"eduvn/config"
	"eduvn/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPayOSConfig(baseURL string) *config.Config {
	cfg := &config.Config{}
	cfg.PayOS = &config.PayOSConfig{
		BaseURL:     baseURL,
		ClientID:    "test-client",
		APIKey:      "test-api-key",
		ChecksumKey: "test-checksum-key",
	}

	return cfg
}

func signFields(checksumKey string, canonical string) string {
	mac := hmac.New(sha256.New, []byte(checksumKey))
	mac.Write([]byte(canonical))

	return hex.EncodeToString(mac.Sum(nil))
}

func TestNewPayOSClient_RequiresCredentials(t *testing.T) {
	client, err := NewPayOSClient(&config.Config{}, slog.Default())
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestCreatePaymentLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/payment-requests", r.URL.Path)
		assert.Equal(t, "test-client", r.Header.Get("x-client-id"))
		assert.Equal(t, "test-api-key", r.Header.Get("x-api-key"))

		var body createLinkRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(123456), body.OrderCode)
		assert.NotEmpty(t, body.Signature)

		json.NewEncoder(w).Encode(map[string]any{
			"code": "00",
			"desc": "success",
			"data": map[string]any{"checkoutUrl": "https://pay.example.com/web/abc"},
		})
	}))
	defer srv.Close()

	client, err := NewPayOSClient(testPayOSConfig(srv.URL), slog.Default())
	require.NoError(t, err)

	url, err := client.CreatePaymentLink(context.Background(), service.PaymentLinkRequest{
		OrderCode:   123456,
		Amount:      499000,
		Description: "Course purchase",
		ReturnURL:   "https://app.example.com/payment/return",
		CancelURL:   "https://app.example.com/payment/cancel",
	})
	assert.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/web/abc", url)
}

func TestCreatePaymentLink_ProviderRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"code": "231", "desc": "duplicate order code"})
	}))
	defer srv.Close()

	client, err := NewPayOSClient(testPayOSConfig(srv.URL), slog.Default())
	require.NoError(t, err)

	url, err := client.CreatePaymentLink(context.Background(), service.PaymentLinkRequest{OrderCode: 1, Amount: 1000})
	assert.Error(t, err)
	assert.Empty(t, url)
}

func TestVerifyWebhook(t *testing.T) {
	client, err := NewPayOSClient(testPayOSConfig("https://unused.example.com"), slog.Default())
	require.NoError(t, err)

	webhook := &service.PaymentWebhook{
		Code:    "00",
		Success: true,
		Data: service.PaymentWebhookData{
			OrderCode:   123456,
			Amount:      499000,
			Description: "Course purchase",
			Reference:   "FT2024",
			Currency:    "VND",
		},
	}
	webhook.Signature = signFields("test-checksum-key",
		"amount=499000&currency=VND&description=Course purchase&orderCode=123456&reference=FT2024")

	assert.NoError(t, client.VerifyWebhook(webhook))
}

func TestVerifyWebhook_BadSignature(t *testing.T) {
	client, err := NewPayOSClient(testPayOSConfig("https://unused.example.com"), slog.Default())
	require.NoError(t, err)

	webhook := &service.PaymentWebhook{
		Data:      service.PaymentWebhookData{OrderCode: 123456, Amount: 499000},
		Signature: "deadbeef",
	}
	assert.Error(t, client.VerifyWebhook(webhook))

	webhook.Signature = ""
	assert.Error(t, client.VerifyWebhook(webhook))

	assert.Error(t, client.VerifyWebhook(nil))
}
