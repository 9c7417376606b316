package model

import (
	"context"
	"net/http"
	"time"

	"github.com/reelify-app/backend/pkg/xcontext"
)

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SigninResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// OAuth2 Login
type OAuth2LoginRequest struct {
	Type string `json:"type"`
}

type OAuth2LoginResponse struct {
	RedirectURL string `json:"-"`
	State       string `json:"-"`
}

func (r OAuth2LoginResponse) RedirectInfo() (int, string) {
	return http.StatusTemporaryRedirect, r.RedirectURL
}

func (r OAuth2LoginResponse) SessionInfo() map[string]any {
	return map[string]any{"state": r.State}
}

// OAuth2 Callback
type OAuth2CallbackRequest struct {
	Type  string `json:"type"`
	State string `json:"state"`
	Code  string `json:"code"`
}

type OAuth2CallbackResponse struct {
	AccessToken  string `json:"-"`
	RefreshToken string `json:"-"`
}

func (r OAuth2CallbackResponse) CookieInfo(ctx context.Context) []http.Cookie {
	return []http.Cookie{
		{
			Name:     xcontext.Configs(ctx).Auth.AccessToken.Name,
			Value:    r.AccessToken,
			Path:     "/",
			Domain:   "",
			Expires:  time.Now().Add(xcontext.Configs(ctx).Auth.AccessToken.Expiration),
			Secure:   true,
			HttpOnly: false,
		},
		{
			Name:     xcontext.Configs(ctx).Auth.RefreshToken.Name,
			Value:    r.RefreshToken,
			Path:     "/",
			Domain:   "",
			Expires:  time.Now().Add(xcontext.Configs(ctx).Auth.RefreshToken.Expiration),
			Secure:   true,
			HttpOnly: false,
		},
	}
}

// OAuth2 Verify (SPA flow)
type OAuth2VerifyRequest struct {
	Type              string `json:"type"`
	IDToken           string `json:"id_token"`
	AuthorizationCode string `json:"authorization_code"`
	CodeVerifier      string `json:"code_verifier"`
	RedirectURI       string `json:"redirect_uri"`
}

type OAuth2VerifyResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Refresh token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
