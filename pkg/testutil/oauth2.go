package testutil

import (
	"context"

	"github.com/reelify-app/backend/pkg/authenticator"
)

type MockOAuth2Service struct {
	Name                        string
	AuthCodeURLFunc             func(state string) string
	VerifyIDTokenFunc           func(ctx context.Context, rawIDToken string) (authenticator.OAuth2User, error)
	VerifyAuthorizationCodeFunc func(ctx context.Context, code, codeVerifier, redirectURI string) (authenticator.OAuth2User, error)
}

func NewMockOAuth2Service(name string) *MockOAuth2Service {
	return &MockOAuth2Service{Name: name}
}

func (m *MockOAuth2Service) Service() string {
	return m.Name
}

func (m *MockOAuth2Service) AuthCodeURL(state string) string {
	if m.AuthCodeURLFunc != nil {
		return m.AuthCodeURLFunc(state)
	}

	return "https://example.com/oauth2/authorize?state=" + state
}

func (m *MockOAuth2Service) VerifyIDToken(
	ctx context.Context, rawIDToken string,
) (authenticator.OAuth2User, error) {
	if m.VerifyIDTokenFunc != nil {
		return m.VerifyIDTokenFunc(ctx, rawIDToken)
	}

	return authenticator.OAuth2User{}, nil
}

func (m *MockOAuth2Service) VerifyAuthorizationCode(
	ctx context.Context, code, codeVerifier, redirectURI string,
) (authenticator.OAuth2User, error) {
	if m.VerifyAuthorizationCodeFunc != nil {
		return m.VerifyAuthorizationCodeFunc(ctx, code, codeVerifier, redirectURI)
	}

	return authenticator.OAuth2User{}, nil
}
