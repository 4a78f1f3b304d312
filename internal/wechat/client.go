// Package wechat talks to the WeChat mini-program backend APIs: the login
// code exchange and the encrypted-payload decryption used for WeRun step data.
package wechat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// SessionResult is the response of the jscode2session exchange. ErrCode is
// non-zero when the provider rejected the code.
type SessionResult struct {
	OpenID     string `json:"openid"`
	SessionKey string `json:"session_key"`
	UnionID    string `json:"unionid,omitempty"`
	ErrCode    int    `json:"errcode,omitempty"`
	ErrMsg     string `json:"errmsg,omitempty"`
}

// Client exchanges one-time login codes with the identity provider.
type Client struct {
	appID      string
	secret     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a provider client. baseURL is overridable so tests can
// point the exchange at a local stub.
func NewClient(appID, secret, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.weixin.qq.com"
	}
	return &Client{
		appID:   appID,
		secret:  secret,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// CodeToSession exchanges a one-time login code for the user's openid and a
// session key. A transport or decoding failure is returned as an error; a
// provider-side rejection is reported through SessionResult.ErrCode.
func (c *Client) CodeToSession(ctx context.Context, code string) (*SessionResult, error) {
	q := url.Values{}
	q.Set("appid", c.appID)
	q.Set("secret", c.secret)
	q.Set("js_code", code)
	q.Set("grant_type", "authorization_code")

	endpoint := fmt.Sprintf("%s/sns/jscode2session?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build session request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("session exchange request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("session exchange returned status %d", resp.StatusCode)
	}

	var result SessionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode session response: %w", err)
	}

	return &result, nil
}
