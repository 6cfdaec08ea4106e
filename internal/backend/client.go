package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/campmart-lk/checkout/pkg/config"
	pkgerrors "github.com/campmart-lk/checkout/pkg/errors"
	"github.com/campmart-lk/checkout/pkg/logger"
)

var (
	errBaseURLRequired = errors.New("backend base url is required")
	errLoggerRequired  = errors.New("backend logger is required")
)

// Client talks to the marketplace booking backend with centralized auth,
// logging, and error mapping.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiToken   string
	logger     *logger.Logger
}

// NewClient validates the backend configuration and builds the REST client.
func NewClient(ctx context.Context, cfg config.BackendConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errBaseURLRequired
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    baseURL,
		apiToken:   strings.TrimSpace(cfg.APIToken),
		logger:     logg,
	}

	logg.Info(ctx, "backend client initialized")
	return c, nil
}

// CreateBooking persists the provisional booking before gateway dispatch.
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingData, error) {
	c.log(ctx, "request", "create_booking", map[string]any{
		"order_id": req.OrderID,
		"cart_id":  req.CartID,
		"amount":   req.AdvanceAmount,
	})

	var data CreateBookingData
	if err := c.do(ctx, http.MethodPost, "/api/v1/bookings", req, &data); err != nil {
		c.log(ctx, "error", "create_booking", map[string]any{"error": err.Error()})
		return nil, err
	}

	c.log(ctx, "response", "create_booking", map[string]any{"booking_id": data.BookingID})
	return &data, nil
}

// ConfirmPayment marks the pending payment as paid.
func (c *Client) ConfirmPayment(ctx context.Context, req ConfirmPaymentRequest) (*ConfirmPaymentData, error) {
	c.log(ctx, "request", "confirm_payment", map[string]any{
		"order_id":   req.OrderID,
		"payment_id": req.PaymentID,
		"amount":     req.Amount,
	})

	var data ConfirmPaymentData
	if err := c.do(ctx, http.MethodPost, "/api/v1/payments/confirm", req, &data); err != nil {
		c.log(ctx, "error", "confirm_payment", map[string]any{"error": err.Error()})
		return nil, err
	}

	c.log(ctx, "response", "confirm_payment", map[string]any{
		"booking_id": data.BookingID,
		"status":     data.Status,
	})
	return &data, nil
}

// CancelPayment releases the provisional booking after a cancel return.
func (c *Client) CancelPayment(ctx context.Context, req CancelPaymentRequest) error {
	c.log(ctx, "request", "cancel_payment", map[string]any{
		"order_id": req.OrderID,
		"reason":   req.Reason,
	})

	if err := c.do(ctx, http.MethodPost, "/api/v1/payments/cancel", req, nil); err != nil {
		c.log(ctx, "error", "cancel_payment", map[string]any{"error": err.Error()})
		return err
	}

	c.log(ctx, "response", "cancel_payment", map[string]any{"order_id": req.OrderID})
	return nil
}

// GetBooking fetches the full booking detail for confirmation display.
func (c *Client) GetBooking(ctx context.Context, bookingID string) (*BookingData, error) {
	var data BookingData
	path := fmt.Sprintf("/api/v1/bookings/%s", bookingID)
	if err := c.do(ctx, http.MethodGet, path, nil, &data); err != nil {
		c.log(ctx, "error", "get_booking", map[string]any{"error": err.Error()})
		return nil, err
	}
	return &data, nil
}

// GetPaymentDetails fetches the payment ledger row for a booking.
func (c *Client) GetPaymentDetails(ctx context.Context, bookingID string) (*PaymentData, error) {
	var data PaymentData
	path := fmt.Sprintf("/api/v1/bookings/%s/payment", bookingID)
	if err := c.do(ctx, http.MethodGet, path, nil, &data); err != nil {
		c.log(ctx, "error", "get_payment_details", map[string]any{"error": err.Error()})
		return nil, err
	}
	return &data, nil
}

// Ping verifies the backend is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health/live", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 400 {
		return fmt.Errorf("backend health returned %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding backend request")
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building backend request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeBackendCall, err, fmt.Sprintf("backend %s %s failed", method, path))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeBackendCall, err, "reading backend response")
	}

	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		if resp.StatusCode >= 400 {
			return pkgerrors.New(codeForStatus(resp.StatusCode), fmt.Sprintf("backend returned status %d", resp.StatusCode))
		}
		return pkgerrors.Wrap(pkgerrors.CodeBackendCall, err, "decoding backend response")
	}

	if !envelope.Success {
		message := envelope.Message
		if message == "" {
			message = fmt.Sprintf("backend returned status %d", resp.StatusCode)
		}
		return pkgerrors.New(codeForStatus(resp.StatusCode), message)
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeBackendCall, err, "decoding backend data")
		}
	}
	return nil
}

func codeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusConflict:
		return pkgerrors.CodeConflict
	case http.StatusBadRequest:
		return pkgerrors.CodeValidation
	case http.StatusUnprocessableEntity:
		return pkgerrors.CodeStateConflict
	default:
		return pkgerrors.CodeBackendCall
	}
}

func (c *Client) log(ctx context.Context, phase, op string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logFields := map[string]any{
		"operation": op,
		"phase":     phase,
	}
	for k, v := range fields {
		logFields[k] = redact(k, v)
	}
	ctx = c.logger.WithFields(ctx, logFields)
	switch phase {
	case "error":
		c.logger.Error(ctx, fmt.Sprintf("backend %s", op), errors.New(fmt.Sprint(fields["error"])))
	default:
		c.logger.Info(ctx, fmt.Sprintf("backend %s", phase))
	}
}

func redact(key string, value any) any {
	lower := strings.ToLower(key)
	for _, sensitive := range []string{"token", "secret", "email", "phone", "address"} {
		if strings.Contains(lower, sensitive) {
			return "[REDACTED]"
		}
	}
	return value
}
