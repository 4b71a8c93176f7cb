package paymentgateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/frahmantamala/loanlink/internal"
	gateway "github.com/frahmantamala/loanlink/internal/core/datamodel/paymentgateway"
)

const defaultTimeout = 30 * time.Second

// Client talks to the hosted checkout API. Requests are form-encoded and
// authenticated with the account's secret key, the way the gateway expects.
type Client struct {
	apiURL     string
	secretKey  string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg internal.PaymentConfig, logger *slog.Logger) *Client {
	return &Client{
		apiURL:    strings.TrimRight(cfg.APIURL, "/"),
		secretKey: cfg.SecretKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// CreateCheckoutSession builds a hosted checkout session carrying the
// metadata that reconciliation reads back later.
func (c *Client) CreateCheckoutSession(ctx context.Context, params *gateway.CreateSessionParams) (*gateway.CheckoutSession, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session params: %w", err)
	}

	currency := params.Currency
	if currency == "" {
		currency = "usd"
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("customer_email", params.CustomerEmail)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.UnitAmount, 10))
	form.Set("line_items[0][price_data][product_data][name]", params.ProductName)
	if params.ProductImage != "" {
		form.Set("line_items[0][price_data][product_data][images][0]", params.ProductImage)
	}
	form.Set("metadata[loanId]", params.Metadata.ApplicationID)
	form.Set("metadata[borrower]", params.Metadata.Borrower)
	form.Set("metadata[loanTitle]", params.Metadata.LoanTitle)
	form.Set("metadata[category]", params.Metadata.Category)
	form.Set("metadata[loanAmount]", params.Metadata.LoanAmount)
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)

	var session gateway.CheckoutSession
	if err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", form, &session); err != nil {
		return nil, err
	}

	c.logger.Info("checkout session created",
		"session_id", session.ID,
		"application_id", params.Metadata.ApplicationID,
		"customer_email", params.CustomerEmail)

	return &session, nil
}

// GetCheckoutSession retrieves a session's final state by id.
func (c *Client) GetCheckoutSession(ctx context.Context, sessionID string) (*gateway.CheckoutSession, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	var session gateway.CheckoutSession
	path := "/v1/checkout/sessions/" + url.PathEscape(sessionID)
	if err := c.do(ctx, http.MethodGet, path, nil, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values, out interface{}) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("gateway returned error",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"response", string(respBody))
		return fmt.Errorf("gateway error: status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}

	return nil
}
