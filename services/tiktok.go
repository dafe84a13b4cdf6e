package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

const tiktokAPI = "https://open.tiktokapis.com/v2"

// TikTokTokenResponse represents a TikTok OAuth token response
type TikTokTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
	OpenID       string `json:"open_id"`
}

// TikTokUserInfo represents the connected TikTok user
type TikTokUserInfo struct {
	OpenID      string `json:"open_id"`
	UnionID     string `json:"union_id,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Username    string `json:"username,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// BuildTikTokAuthURL builds the TikTok Login Kit authorization URL
func BuildTikTokAuthURL(clientKey, redirectURI, state string) string {
	return fmt.Sprintf(
		"https://www.tiktok.com/v2/auth/authorize/?client_key=%s&scope=%s&response_type=code&redirect_uri=%s&state=%s",
		clientKey,
		url.QueryEscape("user.info.basic"),
		url.QueryEscape(redirectURI),
		state,
	)
}

// ExchangeTikTokCode exchanges an authorization code for an access token
func ExchangeTikTokCode(ctx context.Context, clientKey, clientSecret, redirectURI, code string) (*TikTokTokenResponse, error) {
	form := url.Values{}
	form.Set("client_key", clientKey)
	form.Set("client_secret", clientSecret)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", redirectURI)

	req, err := http.NewRequestWithContext(ctx, "POST", tiktokAPI+"/oauth/token/", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		slog.Error("TikTok token exchange failed", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("tiktok token exchange failed: %s", resp.Status)
	}

	var token TikTokTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("failed to decode tiktok token response: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("tiktok token response missing access_token")
	}

	return &token, nil
}

// FetchTikTokUserInfo fetches the connected user's basic profile
func FetchTikTokUserInfo(ctx context.Context, accessToken string) (*TikTokUserInfo, error) {
	endpoint := tiktokAPI + "/user/info/?fields=open_id,union_id,display_name,username,avatar_url"

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		slog.Error("TikTok user info fetch failed", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("tiktok user info fetch failed: %s", resp.Status)
	}

	// TikTok wraps the payload in {"data": {"user": {...}}}
	var wrapper struct {
		Data struct {
			User TikTokUserInfo `json:"user"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wrapper); err != nil {
		return nil, fmt.Errorf("failed to decode tiktok user info: %w", err)
	}

	return &wrapper.Data.User, nil
}
