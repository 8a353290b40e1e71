// Package github describes GitHub as an OAuth2 login provider.
// GitHub issues no ID token, so the login identifier comes from the
// REST user endpoint, authenticated with the "token" scheme.
package github

import "github.com/BlackMission/sociallogin/internal/domain"

const (
	ProviderName    = "GitHub"
	AuthEndpoint    = "https://github.com/login/oauth/authorize"
	TokenEndpoint   = "https://github.com/login/oauth/access_token"
	ProfileEndpoint = "https://api.github.com/user"
)

// Config holds GitHub OAuth app credentials.
type Config struct {
	ClientID     string
	ClientSecret string
	Scopes       []string
}

// New returns the provider configuration for a GitHub OAuth app.
func New(cfg Config) domain.ProviderConfig {
	p := Defaults()
	p.ClientID = cfg.ClientID
	p.ClientSecret = cfg.ClientSecret
	if len(cfg.Scopes) > 0 {
		p.Scopes = cfg.Scopes
	}
	return p
}

// Defaults returns GitHub's endpoints without credentials.
func Defaults() domain.ProviderConfig {
	return domain.ProviderConfig{
		Name:         ProviderName,
		DisplayName:  "GitHub",
		AuthorizeURL: AuthEndpoint,
		TokenURL:     TokenEndpoint,
		ProfileURL:   ProfileEndpoint,
		Scopes:       []string{"read:user"},
		AuthScheme:   domain.SchemeToken,
		LoginField:   domain.DefaultLoginField,
	}
}
