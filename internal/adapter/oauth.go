// SPDX-License-Identifier: Apache-2.0

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/SAMAymen/formix/internal/config"
	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/internal/utils"
	"github.com/SAMAymen/formix/models"
	"github.com/go-resty/resty/v2"
)

// tokenResponse is the provider's token endpoint payload for both the
// authorization-code and refresh-token grants.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope"`
	TokenType    string `json:"token_type"`
}

type tokenErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

type restyOAuthAdapter struct {
	client *utils.HTTPClient
	cfg    config.Google
	logger *logger.Logger
}

// NewOAuthAdapter constructs a REST implementation of [OAuthAdapter] against
// the provider's OAuth 2.0 endpoints.
func NewOAuthAdapter(cfg config.Google, log *logger.Logger) (OAuthAdapter, error) {
	if cfg.TokenURL == "" || cfg.AuthURL == "" {
		return nil, fmt.Errorf("oauth endpoints are not configured")
	}

	return &restyOAuthAdapter{
		client: utils.NewHTTPClient(),
		cfg:    cfg,
		logger: log,
	}, nil
}

// AuthCodeURL implements [OAuthAdapter]. It builds the consent URL with
// offline access so the provider issues a refresh token on first consent.
func (o *restyOAuthAdapter) AuthCodeURL(state string) string {
	params := url.Values{}
	params.Set("client_id", o.cfg.ClientID)
	params.Set("redirect_uri", o.cfg.RedirectURL)
	params.Set("response_type", "code")
	params.Set("scope", o.cfg.Scopes)
	params.Set("state", state)
	params.Set("access_type", "offline")
	params.Set("prompt", "consent")

	return o.cfg.AuthURL + "?" + params.Encode()
}

// ExchangeCode implements [OAuthAdapter].
func (o *restyOAuthAdapter) ExchangeCode(ctx context.Context, code string) (models.Account, error) {
	tr, err := o.tokenRequest(ctx, map[string]string{
		"grant_type":    "authorization_code",
		"code":          code,
		"client_id":     o.cfg.ClientID,
		"client_secret": o.cfg.ClientSecret,
		"redirect_uri":  o.cfg.RedirectURL,
	})
	if err != nil {
		return models.Account{}, fmt.Errorf("exchange authorization code: %w", err)
	}

	return models.Account{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		Expiry:       time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second),
		Scope:        tr.Scope,
	}, nil
}

// RefreshToken implements [OAuthAdapter]. An invalid_grant answer means the
// user revoked access; that is surfaced as [ErrGrantRevoked] so the service
// layer can demand a re-link instead of retrying.
func (o *restyOAuthAdapter) RefreshToken(ctx context.Context, refreshToken string) (string, time.Time, error) {
	tr, err := o.tokenRequest(ctx, map[string]string{
		"grant_type":    "refresh_token",
		"refresh_token": refreshToken,
		"client_id":     o.cfg.ClientID,
		"client_secret": o.cfg.ClientSecret,
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("refresh access token: %w", err)
	}

	return tr.AccessToken, time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second), nil
}

func (o *restyOAuthAdapter) tokenRequest(ctx context.Context, form map[string]string) (tokenResponse, error) {
	resp, err := o.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetFormData(form).
		Post(o.cfg.TokenURL)
	if err != nil {
		return tokenResponse{}, fmt.Errorf("token request: %w", err)
	}
	if !resp.IsSuccess() {
		return tokenResponse{}, mapTokenError(resp)
	}

	var tr tokenResponse
	if err = json.Unmarshal(resp.Body(), &tr); err != nil {
		return tokenResponse{}, fmt.Errorf("decode token response: %w", err)
	}

	return tr, nil
}

func mapTokenError(resp *resty.Response) error {
	var te tokenErrorResponse
	_ = json.Unmarshal(resp.Body(), &te)

	if te.Error == "invalid_grant" {
		return fmt.Errorf("%w: %s", ErrGrantRevoked, te.ErrorDescription)
	}

	return fmt.Errorf("token endpoint http %d: %s %s", resp.StatusCode(), te.Error, te.ErrorDescription)
}
