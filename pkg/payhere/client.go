package payhere

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/campmart-lk/checkout/pkg/config"
	"github.com/campmart-lk/checkout/pkg/enums"
	"github.com/campmart-lk/checkout/pkg/logger"
)

const (
	sandboxEnv    = "sandbox"
	productionEnv = "production"
)

var (
	errMerchantIDRequired = errors.New("payhere merchant id is required")
	errSecretRequired     = errors.New("payhere merchant secret is required")
)

var checkoutURLs = map[string]string{
	sandboxEnv:    "https://sandbox.payhere.lk/pay/checkout",
	productionEnv: "https://www.payhere.lk/pay/checkout",
}

// Client holds the gateway credentials and endpoint selection. It never
// talks to the gateway directly; the browser handoff is a form post built
// from a signed CheckoutParams.
type Client struct {
	merchantID     string
	merchantSecret string
	currency       string
	environment    string
	checkoutURL    string
	returnURL      string
	cancelURL      string
	notifyURL      string
	logger         *logger.Logger
}

// NewClient validates the gateway credentials and resolves endpoints.
func NewClient(ctx context.Context, cfg config.PayHereConfig, logg *logger.Logger) (*Client, error) {
	merchantID := strings.TrimSpace(cfg.MerchantID)
	if merchantID == "" {
		return nil, errMerchantIDRequired
	}
	merchantSecret := strings.TrimSpace(cfg.MerchantSecret)
	if merchantSecret == "" {
		return nil, errSecretRequired
	}
	currency, err := enums.ParseCurrency(strings.TrimSpace(strings.ToUpper(cfg.Currency)))
	if err != nil {
		return nil, err
	}

	env := productionEnv
	if cfg.Sandbox {
		env = sandboxEnv
	}
	checkoutURL := strings.TrimSpace(cfg.CheckoutURL)
	if checkoutURL == "" {
		checkoutURL = checkoutURLs[env]
	}

	c := &Client{
		merchantID:     merchantID,
		merchantSecret: merchantSecret,
		currency:       currency.String(),
		environment:    env,
		checkoutURL:    checkoutURL,
		returnURL:      strings.TrimSpace(cfg.ReturnURL),
		cancelURL:      strings.TrimSpace(cfg.CancelURL),
		notifyURL:      strings.TrimSpace(cfg.NotifyURL),
		logger:         logg,
	}

	if logg != nil {
		logg.Info(ctx, fmt.Sprintf("payhere client initialized (%s)", env))
	}
	return c, nil
}

// MerchantID returns the configured merchant id.
func (c *Client) MerchantID() string {
	if c == nil {
		return ""
	}
	return c.merchantID
}

// Currency returns the gateway currency code.
func (c *Client) Currency() string {
	if c == nil {
		return ""
	}
	return c.currency
}

// Environment reports sandbox or production.
func (c *Client) Environment() string {
	if c == nil {
		return ""
	}
	return c.environment
}

// CheckoutURL returns the hosted checkout endpoint for the environment.
func (c *Client) CheckoutURL() string {
	if c == nil {
		return ""
	}
	return c.checkoutURL
}

// ReturnURL returns the configured success-return endpoint.
func (c *Client) ReturnURL() string {
	if c == nil {
		return ""
	}
	return c.returnURL
}

// CancelURL returns the configured cancel-return endpoint.
func (c *Client) CancelURL() string {
	if c == nil {
		return ""
	}
	return c.cancelURL
}

// NotifyURL returns the server-to-server notification endpoint.
func (c *Client) NotifyURL() string {
	if c == nil {
		return ""
	}
	return c.notifyURL
}

// Sign computes the integrity hash for an order using the already-formatted
// amount string. The caller must reuse the exact same string as the request's
// amount field; a reformatted value invalidates the hash server-side.
func (c *Client) Sign(orderID, formattedAmount string) string {
	if c == nil {
		return ""
	}
	return ComputeHash(c.merchantID, orderID, formattedAmount, c.currency, c.merchantSecret)
}
