// Package billing talks to the hosted checkout service used to upgrade
// an account from the free tier to pro.
package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/editflowhq/editflow/internal/domain"
)

// CheckoutRequest holds the parameters for starting a checkout session.
type CheckoutRequest struct {
	Plan  domain.PlanTier
	Email string
	Name  string
}

// CheckoutSession is the result of a successful checkout call. The URL
// points at the payment provider's hosted page.
type CheckoutSession struct {
	URL string
}

// CheckoutClient starts checkout sessions against the billing endpoint.
type CheckoutClient struct {
	endpoint string
	http     *http.Client
}

// NewCheckoutClient creates a client for the checkout endpoint at the
// given base URL.
func NewCheckoutClient(endpoint string) *CheckoutClient {
	return &CheckoutClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

// checkoutRequest is the JSON body sent to POST /api/create-checkout.
type checkoutRequest struct {
	Plan  string `json:"plan"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// checkoutResponse is the JSON body returned by POST /api/create-checkout.
// Exactly one of the two fields is set.
type checkoutResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
	Error       string `json:"error"`
}

// CreateCheckout asks the billing service for a hosted checkout session.
func (c *CheckoutClient) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	data, err := json.Marshal(checkoutRequest{
		Plan:  string(req.Plan),
		Email: req.Email,
		Name:  req.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.endpoint + "/api/create-checkout"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		if isConnectionError(err) {
			return nil, ErrServiceUnavailable
		}
		return nil, fmt.Errorf("calling checkout: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	// A non-JSON body means the request never reached the billing
	// function, regardless of status code.
	var resp checkoutResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w (status %d)", ErrBadGateway, httpResp.StatusCode)
	}

	if httpResp.StatusCode != http.StatusOK || resp.Error != "" {
		msg := resp.Error
		if msg == "" {
			msg = fmt.Sprintf("status %d", httpResp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s", ErrCheckoutDeclined, msg)
	}
	if resp.CheckoutURL == "" {
		return nil, fmt.Errorf("%w: empty checkout url", ErrBadGateway)
	}

	return &CheckoutSession{URL: resp.CheckoutURL}, nil
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
