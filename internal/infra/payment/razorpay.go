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
	"net/http"
	"time"

	"geargo/internal/domain/booking"
	"geargo/internal/pkg/config"
	"geargo/internal/pkg/errs"
	"geargo/internal/usecase/commands"
)

var (
	errOrderCreate   = errs.New("payment order creation failed")
	errRefundRequest = errs.New("refund request failed")
)

// Client talks to the Razorpay REST API using key ID/secret basic auth.
// Amounts cross the wire in the currency's smallest unit, which matches
// the paise representation used internally.
type Client struct {
	http *http.Client
	cfg  config.PaymentConfig
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		http: &http.Client{Timeout: 15 * time.Second},
		cfg:  cfg.Payment,
	}
}

type orderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

func (c *Client) CreateOrder(ctx context.Context, amount booking.Money, receipt string) (*commands.PaymentOrder, error) {
	body := orderRequest{
		Amount:   amount.Paise(),
		Currency: c.cfg.Currency,
		Receipt:  receipt,
	}

	var resp orderResponse
	if err := c.post(ctx, "/v1/orders", body, &resp); err != nil {
		return nil, errs.Mark(err, errOrderCreate)
	}

	return &commands.PaymentOrder{
		ID:       resp.ID,
		Amount:   resp.Amount,
		Currency: resp.Currency,
	}, nil
}

type refundRequest struct {
	Amount int64             `json:"amount"`
	Notes  map[string]string `json:"notes,omitempty"`
}

type refundResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (c *Client) Refund(ctx context.Context, paymentID string, amount booking.Money, reason string) (string, error) {
	body := refundRequest{Amount: amount.Paise()}
	if reason != "" {
		body.Notes = map[string]string{"reason": reason}
	}

	var resp refundResponse
	path := fmt.Sprintf("/v1/payments/%s/refund", paymentID)
	if err := c.post(ctx, path, body, &resp); err != nil {
		return "", errs.Mark(err, errRefundRequest)
	}
	return resp.ID, nil
}

// VerifySignature checks the checkout callback signature, an HMAC-SHA256
// of "orderID|paymentID" keyed with the API key secret.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	return verifyHMAC([]byte(orderID+"|"+paymentID), signature, c.cfg.KeySecret)
}

// VerifyWebhook checks the webhook signature, an HMAC-SHA256 of the raw
// request body keyed with the webhook secret.
func (c *Client) VerifyWebhook(body []byte, signature string) bool {
	return verifyHMAC(body, signature, c.cfg.WebhookSecret)
}

func verifyHMAC(payload []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrap(err, "failed to encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(buf))
	if err != nil {
		return errs.Wrap(err, "failed to build request")
	}
	req.SetBasicAuth(c.cfg.KeyID, c.cfg.KeySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errs.Wrap(err, "gateway request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errs.New(fmt.Sprintf("gateway returned %d: %s", resp.StatusCode, snippet))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.Wrap(err, "failed to decode response")
	}
	return nil
}
