// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package payment verifies checkout sessions against the Stripe API.
// Only session retrieval is needed; checkout itself happens client-side
// with a payment link.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.stripe.com"

// ErrSessionIDRequired is returned when VerifySession is called without an id.
var ErrSessionIDRequired = errors.New("session_id required")

// Session is the verified outcome of a checkout session.
type Session struct {
	Email   string `json:"email"`
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// Client is a minimal Stripe API client for checkout session retrieval.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// New creates a Stripe client. Returns nil when the key is empty so the
// app can start without payment verification configured.
func New(apiKey, baseURL string) *Client {
	if apiKey == "" {
		return nil
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// checkoutSession mirrors the fields of the Stripe response we read.
type checkoutSession struct {
	ClientReferenceID string `json:"client_reference_id"`
	CustomerEmail     string `json:"customer_email"`
	PaymentStatus     string `json:"payment_status"`
	CustomerDetails   *struct {
		Email string `json:"email"`
	} `json:"customer_details"`
}

// VerifySession retrieves a checkout session and returns the customer
// email, order reference, and payment status.
func (c *Client) VerifySession(ctx context.Context, sessionID string) (*Session, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrSessionIDRequired
	}

	endpoint := c.baseURL + "/v1/checkout/sessions/" + url.PathEscape(sessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("stripe request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stripe request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("stripe response read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stripe session retrieve: status %d: %s", resp.StatusCode, truncate(body))
	}

	var session checkoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("stripe response decode: %w", err)
	}

	email := session.CustomerEmail
	if session.CustomerDetails != nil && session.CustomerDetails.Email != "" {
		email = session.CustomerDetails.Email
	}

	return &Session{
		Email:   email,
		OrderID: session.ClientReferenceID,
		Status:  session.PaymentStatus,
	}, nil
}

func truncate(body []byte) string {
	if len(body) > 200 {
		return string(body[:200]) + "..."
	}
	return string(body)
}
