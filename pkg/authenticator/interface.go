package authenticator

import (
	"context"
	"time"
)

type TokenEngine interface {
	Generate(expiration time.Duration, obj any) (string, error)
	Verify(token string, obj any) error
}

type OAuth2User struct {
	ID       string
	Username string
	Avatar   string
	Email    string
}

type IOAuth2Service interface {
	Service() string
	AuthCodeURL(state string) string
	VerifyIDToken(ctx context.Context, rawIDToken string) (OAuth2User, error)
	VerifyAuthorizationCode(ctx context.Context, code, codeVerifier, redirectURI string) (OAuth2User, error)
}
