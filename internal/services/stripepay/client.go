package stripepay

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const apiBaseURL = "https://api.stripe.com"

const (
	checkoutSessionsEndpoint = "/v1/checkout/sessions"
	subscriptionEndpoint     = "/v1/subscriptions/%s"
)

// Client is a thin Stripe API client covering the checkout-session and
// subscription calls the white-label flow needs. Stripe's API is
// form-encoded on requests and JSON on responses.
type Client struct {
	BaseURL    string
	SecretKey  string
	HTTPClient *http.Client
}

// NewClient creates a new Stripe API client
func NewClient(secretKey string) *Client {
	return &Client{
		BaseURL:    apiBaseURL,
		SecretKey:  secretKey,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// CheckoutSession is the subset of Stripe's checkout session object we use
type CheckoutSession struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Customer string `json:"customer"`
	Status   string `json:"status"`
}

// Subscription is the subset of Stripe's subscription object we use
type Subscription struct {
	ID                 string `json:"id"`
	Status             string `json:"status"`
	Customer           string `json:"customer"`
	CancelAtPeriodEnd  bool   `json:"cancel_at_period_end"`
	CurrentPeriodEnd   int64  `json:"current_period_end"`
	CurrentPeriodStart int64  `json:"current_period_start"`
}

// apiError is Stripe's error envelope
type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateSubscriptionCheckout creates a hosted checkout session for a
// recurring price. The browser is redirected to the returned URL; Stripe
// owns the rest of the flow.
func (c *Client) CreateSubscriptionCheckout(priceID, customerEmail, successURL, cancelURL string, metadata map[string]string) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("line_items[0][price]", priceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("customer_email", customerEmail)
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)
	for k, v := range metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	var session CheckoutSession
	if err := c.do("POST", checkoutSessionsEndpoint, form, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetSubscription retrieves a subscription by ID
func (c *Client) GetSubscription(subscriptionID string) (*Subscription, error) {
	var sub Subscription
	endpoint := fmt.Sprintf(subscriptionEndpoint, subscriptionID)
	if err := c.do("GET", endpoint, nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// CancelSubscription cancels a subscription at period end
func (c *Client) CancelSubscription(subscriptionID string) (*Subscription, error) {
	form := url.Values{}
	form.Set("cancel_at_period_end", "true")

	var sub Subscription
	endpoint := fmt.Sprintf(subscriptionEndpoint, subscriptionID)
	if err := c.do("POST", endpoint, form, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (c *Client) do(method, endpoint string, form url.Values, out interface{}) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequest(method, c.BaseURL+endpoint, body)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read stripe response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("stripe error (%s): %s", apiErr.Error.Type, apiErr.Error.Message)
		}
		return fmt.Errorf("stripe returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode stripe response: %w", err)
		}
	}

	return nil
}
