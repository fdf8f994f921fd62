package authsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the hdnotes authentication service.
// It provides access to unauthenticated operations and creates Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new auth service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// IssueOTP asks the service to mail a one-time code.
func (c *SDKClient) IssueOTP(ctx context.Context, req IssueOTPRequest) (*IssueOTPResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/issue-otp", "", req)
	if err != nil {
		return nil, err
	}

	var out IssueOTPResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyOTP exchanges a code for a session.
func (c *SDKClient) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*Session, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/verify-otp", "", req)
	if err != nil {
		return nil, err
	}

	var out VerifyOTPResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return c.NewSessionFromToken(out.SessionToken, out.ExpiresAt, out.Subject), nil
}

// CheckUser reports whether an account exists for email.
func (c *SDKClient) CheckUser(ctx context.Context, email string) (*CheckUserResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/check-user", "", CheckUserRequest{Email: email})
	if err != nil {
		return nil, err
	}

	var out CheckUserResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness checks if the service is ready. A degraded service returns
// the decoded checks together with ErrServiceUnavailable.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *SDKClient) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, "", nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if resp.StatusCode == http.StatusServiceUnavailable {
		defer resp.Body.Close()
		_ = json.NewDecoder(resp.Body).Decode(&health)
		return &health, ErrServiceUnavailable
	}
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// NewSessionFromToken wraps an existing session token, for example one read
// back from a cookie.
func (c *SDKClient) NewSessionFromToken(token string, expiresAt time.Time, subject Subject) *Session {
	return &Session{
		client:    c,
		token:     token,
		expiresAt: expiresAt,
		subject:   subject,
	}
}
