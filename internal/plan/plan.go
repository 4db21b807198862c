// Package plan integrates the billing collaborator and gates link
// creation to paying tiers.
package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Plan is a subscription tier reported by the billing service.
type Plan string

const (
	Free     Plan = "free"
	Pro      Plan = "pro"
	Business Plan = "business"
)

// Paid reports whether the plan is a paying tier.
func (p Plan) Paid() bool {
	return p == Pro || p == Business
}

// Service answers what plan a user holds. Implemented by the billing
// collaborator.
type Service interface {
	GetPlan(ctx context.Context, userID string) (Plan, error)
}

// Gate restricts public link creation to paying tiers. Enforced at
// creation time only; a later downgrade does not touch existing links.
type Gate struct {
	plans Service
}

// NewGate creates a plan gate backed by the given plan service.
func NewGate(plans Service) *Gate {
	return &Gate{plans: plans}
}

// CanCreatePublicLink reports whether the user's current plan allows
// creating public share links.
func (g *Gate) CanCreatePublicLink(ctx context.Context, userID string) (bool, error) {
	p, err := g.plans.GetPlan(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to fetch plan: %w", err)
	}

	return p.Paid(), nil
}

// Static is a fixed plan source for development and tests.
type Static struct {
	Default   Plan
	Overrides map[string]Plan
}

func (s *Static) GetPlan(_ context.Context, userID string) (Plan, error) {
	if p, ok := s.Overrides[userID]; ok {
		return p, nil
	}

	return s.Default, nil
}

// HTTPClient fetches plans from the billing service over HTTP.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a billing client for the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *HTTPClient) GetPlan(ctx context.Context, userID string) (Plan, error) {
	endpoint := fmt.Sprintf("%s/plans/%s", c.baseURL, url.PathEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("billing request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("billing responded with status %d", resp.StatusCode)
	}

	var body struct {
		Plan Plan `json:"plan"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode billing response: %w", err)
	}

	return body.Plan, nil
}
