// Package exchange drives the OAuth2 authorization-code grant against a
// provider: it builds the authorize redirect and trades the returned code
// for an access credential.
package exchange

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/BlackMission/sociallogin/internal/domain"
)

// Exchanger talks to provider authorize and token endpoints.
type Exchanger struct {
	http *http.Client
}

// New creates an Exchanger that sends token requests through httpClient.
func New(httpClient *http.Client) *Exchanger {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Exchanger{http: httpClient}
}

// AuthCodeURL returns the provider authorize URL carrying client_id,
// redirect_uri, response_type=code, scope and state.
func (e *Exchanger) AuthCodeURL(provider domain.ProviderConfig, redirectURI, state string) string {
	return oauthConfig(provider, redirectURI).AuthCodeURL(state)
}

// Exchange trades an authorization code for a credential. A token response
// carrying oauth_token_secret yields domain.TokenWithSecret, anything else
// domain.TokenOnly.
func (e *Exchanger) Exchange(ctx context.Context, provider domain.ProviderConfig, code, redirectURI string) (domain.AccessCredential, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: empty authorization code", domain.ErrTokenExchange)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, e.http)
	tok, err := oauthConfig(provider, redirectURI).Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenExchange, err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token", domain.ErrTokenExchange)
	}

	if secret, _ := tok.Extra("oauth_token_secret").(string); secret != "" {
		return domain.TokenWithSecret{Token: tok.AccessToken, Secret: secret}, nil
	}
	return domain.TokenOnly{AccessToken: tok.AccessToken, TokenType: tok.Type()}, nil
}

func oauthConfig(p domain.ProviderConfig, redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     p.ClientID,
		ClientSecret: p.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:   p.AuthorizeURL,
			TokenURL:  p.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
		RedirectURL: redirectURI,
		Scopes:      p.Scopes,
	}
}
