package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"
)

// StatusCaptured is the only payment status treated as a successful charge.
const StatusCaptured = "captured"

const defaultTimeout = 10 * time.Second

// ErrTimeout marks a gateway call that exceeded the client's deadline.
// Callers surface it as retryable.
var ErrTimeout = errors.New("razorpay: request timed out")

// APIError is a rejection reported by Razorpay itself.
type APIError struct {
	StatusCode  int
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("razorpay: api error (%d) %s: %s", e.StatusCode, e.Code, e.Description)
}

// Payment is the authoritative payment state fetched back from the gateway.
type Payment struct {
	ID       string `json:"id"`
	OrderID  string `json:"order_id"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type Client struct {
	keyID     string
	keySecret string
	baseURL   string
	http      *http.Client
}

// New builds a client against the given API base URL. A zero timeout falls
// back to the default.
func New(keyID, keySecret, baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   baseURL,
		http:      &http.Client{Timeout: timeout},
	}
}

// NewFromEnv reads RAZORPAY_KEY_ID / RAZORPAY_KEY_SECRET, with an optional
// RAZORPAY_API_URL override for sandbox setups.
func NewFromEnv() (*Client, error) {
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keyID == "" || keySecret == "" {
		return nil, errors.New("razorpay configuration missing")
	}
	baseURL := os.Getenv("RAZORPAY_API_URL")
	if baseURL == "" {
		baseURL = "https://api.razorpay.com/v1"
	}
	return New(keyID, keySecret, baseURL, defaultTimeout), nil
}

// CreateOrder opens a gateway session for amountMinor in the given currency
// and returns the gateway's order id. Notes round-trip internal metadata
// back through the payment callback.
func (c *Client) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string, notes map[string]string) (string, error) {
	payload := map[string]interface{}{
		"amount":          amountMinor,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}
	if len(notes) > 0 {
		payload["notes"] = notes
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/orders", payload, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", errors.New("razorpay: create order returned empty order id")
	}
	return out.ID, nil
}

// FetchPayment returns the gateway's view of a payment reference.
func (c *Client) FetchPayment(ctx context.Context, paymentID string) (*Payment, error) {
	if paymentID == "" {
		return nil, errors.New("razorpay: payment id is required")
	}
	var payment Payment
	if err := c.do(ctx, http.MethodGet, "/payments/"+paymentID, nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("razorpay: encode request: %w", err)
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("razorpay: build request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return ErrTimeout
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return fmt.Errorf("razorpay: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("razorpay: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Error APIError `json:"error"`
		}
		if err := json.Unmarshal(respBody, &envelope); err != nil || envelope.Error.Description == "" {
			return &APIError{StatusCode: resp.StatusCode, Description: string(respBody)}
		}
		envelope.Error.StatusCode = resp.StatusCode
		return &envelope.Error
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("razorpay: parse response: %w", err)
	}
	return nil
}
