package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultOAuthURL is the host serving GitHub's OAuth endpoints.
const DefaultOAuthURL = "https://github.com"

// minPollInterval is the smallest polling interval GitHub accepts.
const minPollInterval = 5 * time.Second

// OAuthClient runs the GitHub device authorization flow.
//
// There is no built-in client ID: the OAuth App must be supplied through
// configuration (GITHUB_CLIENT_ID or the config file).
type OAuthClient struct {
	config     OAuthConfig
	httpClient *http.Client
	baseURL    string
	interval   time.Duration // overrides the server interval when > 0
}

// NewOAuthClient creates a new OAuth client.
func NewOAuthClient(config OAuthConfig) *OAuthClient {
	return &OAuthClient{
		config:     config,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    DefaultOAuthURL,
	}
}

// RequestDeviceCode initiates the device authorization flow.
// The user must visit the VerificationURI and enter the UserCode.
func (c *OAuthClient) RequestDeviceCode(ctx context.Context) (*DeviceCodeResponse, error) {
	if c.config.ClientID == "" {
		return nil, fmt.Errorf("no OAuth client ID configured (set GITHUB_CLIENT_ID)")
	}
	data := url.Values{
		"client_id": {c.config.ClientID},
		"scope":     {strings.Join(c.config.Scopes, " ")},
	}

	var result DeviceCodeResponse
	if err := c.post(ctx, "/login/device/code", data, &result); err != nil {
		return nil, err
	}
	if result.DeviceCode == "" {
		return nil, fmt.Errorf("device code response has no device_code")
	}
	return &result, nil
}

// PollForToken polls GitHub for the access token after user authorization.
// It respects the interval from the device code response.
// Returns the token when authorized, or an error if expired/denied.
func (c *OAuthClient) PollForToken(ctx context.Context, deviceCode string, interval int) (*OAuthToken, error) {
	wait := time.Duration(interval) * time.Second
	if wait < minPollInterval {
		wait = minPollInterval
	}
	if c.interval > 0 {
		wait = c.interval
	}

	ticker := time.NewTicker(wait)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			token, err := c.checkDeviceToken(ctx, deviceCode)
			if err != nil {
				if strings.Contains(err.Error(), "authorization_pending") {
					continue
				}
				if strings.Contains(err.Error(), "slow_down") {
					wait += minPollInterval
					ticker.Reset(wait)
					continue
				}
				return nil, err // expired, denied, ...
			}
			return token, nil
		}
	}
}

// checkDeviceToken attempts to exchange the device code for a token.
func (c *OAuthClient) checkDeviceToken(ctx context.Context, deviceCode string) (*OAuthToken, error) {
	data := url.Values{
		"client_id":   {c.config.ClientID},
		"device_code": {deviceCode},
		"grant_type":  {"urn:ietf:params:oauth:grant-type:device_code"},
	}

	var result struct {
		OAuthToken
		Error     string `json:"error"`
		ErrorDesc string `json:"error_description"`
	}
	if err := c.post(ctx, "/login/oauth/access_token", data, &result); err != nil {
		return nil, err
	}
	if result.Error != "" {
		return nil, fmt.Errorf("%s: %s", result.Error, result.ErrorDesc)
	}
	return &result.OAuthToken, nil
}

func (c *OAuthClient) post(ctx context.Context, path string, data url.Values, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GitHub OAuth error (%d)", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
