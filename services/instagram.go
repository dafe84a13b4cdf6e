package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

const fbGraphAPI = "https://graph.facebook.com/v18.0"

// FacebookTokenResponse represents a Meta OAuth token response
type FacebookTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in,omitempty"`
}

// FacebookUserProfile represents the connected Facebook user
type FacebookUserProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// BuildInstagramAuthURL builds the Facebook Login dialog URL for the
// Instagram connection flow
func BuildInstagramAuthURL(appID, redirectURI, state string) string {
	return fmt.Sprintf(
		"https://www.facebook.com/v18.0/dialog/oauth?client_id=%s&redirect_uri=%s&scope=%s&response_type=code&state=%s",
		appID,
		url.QueryEscape(redirectURI),
		url.QueryEscape("email,public_profile"),
		state,
	)
}

// ExchangeFacebookCode exchanges an authorization code for a short-lived token
func ExchangeFacebookCode(ctx context.Context, appID, appSecret, redirectURI, code string) (*FacebookTokenResponse, error) {
	endpoint := fmt.Sprintf("%s/oauth/access_token?client_id=%s&client_secret=%s&redirect_uri=%s&code=%s",
		fbGraphAPI, appID, appSecret, url.QueryEscape(redirectURI), code)

	return fetchFacebookToken(ctx, endpoint)
}

// ExchangeFacebookLongLivedToken exchanges a short-lived token for a long-lived one
func ExchangeFacebookLongLivedToken(ctx context.Context, appID, appSecret, shortToken string) (*FacebookTokenResponse, error) {
	endpoint := fmt.Sprintf("%s/oauth/access_token?grant_type=fb_exchange_token&client_id=%s&client_secret=%s&fb_exchange_token=%s",
		fbGraphAPI, appID, appSecret, shortToken)

	return fetchFacebookToken(ctx, endpoint)
}

func fetchFacebookToken(ctx context.Context, endpoint string) (*FacebookTokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		slog.Error("Facebook token exchange failed", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("facebook token exchange failed: %s", resp.Status)
	}

	var token FacebookTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("failed to decode facebook token response: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("facebook token response missing access_token")
	}

	return &token, nil
}

// FetchFacebookUserProfile fetches the connected user's profile
func FetchFacebookUserProfile(ctx context.Context, accessToken string) (*FacebookUserProfile, error) {
	endpoint := fmt.Sprintf("%s/me?fields=id,name,email&access_token=%s", fbGraphAPI, accessToken)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		slog.Error("Facebook profile fetch failed", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("facebook profile fetch failed: %s", resp.Status)
	}

	var profile FacebookUserProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode facebook profile: %w", err)
	}

	return &profile, nil
}
