package authenticator

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/reelify-app/backend/config"
	"golang.org/x/oauth2"
)

type oauth2Service struct {
	*oidc.Provider
	oauth2.Config

	name    string
	idField string
}

func NewOAuth2Service(
	ctx context.Context, cfg config.Configs, oauth2Cfg config.OAuth2Config,
) (IOAuth2Service, error) {
	provider, err := oidc.NewProvider(ctx, oauth2Cfg.Issuer)
	if err != nil {
		return nil, err
	}

	oauth2Config := oauth2.Config{
		ClientID:     oauth2Cfg.ClientID,
		ClientSecret: oauth2Cfg.ClientSecret,
		Endpoint:     provider.Endpoint(),
		RedirectURL: fmt.Sprintf("http://%s/auth/oauth2/callback?type=%s",
			cfg.ApiServer.Address(), oauth2Cfg.Name),
		Scopes: []string{oidc.ScopeOpenID, "profile", "email"},
	}

	return &oauth2Service{
		name:     oauth2Cfg.Name,
		idField:  oauth2Cfg.IDField,
		Provider: provider,
		Config:   oauth2Config,
	}, nil
}

func (s *oauth2Service) Service() string {
	return s.name
}

func (s *oauth2Service) AuthCodeURL(state string) string {
	return s.Config.AuthCodeURL(state)
}

// VerifyIDToken checks the signature of a raw id token against the provider
// keys and extracts the service user from its claims.
func (s *oauth2Service) VerifyIDToken(ctx context.Context, rawIDToken string) (OAuth2User, error) {
	idToken, err := s.Verifier(&oidc.Config{ClientID: s.ClientID}).Verify(ctx, rawIDToken)
	if err != nil {
		return OAuth2User{}, err
	}

	return s.userFromIDToken(idToken)
}

func (s *oauth2Service) VerifyAuthorizationCode(
	ctx context.Context, code, codeVerifier, redirectURI string,
) (OAuth2User, error) {
	opts := []oauth2.AuthCodeOption{}
	if codeVerifier != "" {
		opts = append(opts, oauth2.SetAuthURLParam("code_verifier", codeVerifier))
	}

	if redirectURI != "" {
		opts = append(opts, oauth2.SetAuthURLParam("redirect_uri", redirectURI))
	}

	token, err := s.Exchange(ctx, code, opts...)
	if err != nil {
		return OAuth2User{}, err
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return OAuth2User{}, errors.New("no id_token field in oauth2 token")
	}

	return s.VerifyIDToken(ctx, rawIDToken)
}

func (s *oauth2Service) userFromIDToken(idToken *oidc.IDToken) (OAuth2User, error) {
	var profile map[string]any
	if err := idToken.Claims(&profile); err != nil {
		return OAuth2User{}, errors.New("invalid id token")
	}

	id, ok := profile[s.idField].(string)
	if !ok {
		return OAuth2User{}, fmt.Errorf("invalid id field %s", s.idField)
	}

	username, _ := profile["name"].(string)
	avatar, _ := profile["picture"].(string)
	email, _ := profile["email"].(string)

	// The service user id is tagged with the service name to avoid collision
	// between providers.
	return OAuth2User{
		ID:       fmt.Sprintf("%s_%s", s.name, id),
		Username: username,
		Avatar:   avatar,
		Email:    email,
	}, nil
}
