package discord

import "github.com/BlackMission/sociallogin/internal/domain"

const (
	ProviderName        = "discord"
	defaultAuthEndpoint = "https://discord.com/api/oauth2/authorize"
	defaultTokenURL     = "https://discord.com/api/oauth2/token"
	defaultUserURL      = "https://discord.com/api/users/@me"
)

// Config holds Discord OAuth2 settings.
type Config struct {
	ClientID     string
	ClientSecret string
	Scopes       []string
}

// New returns the provider configuration for a Discord application.
func New(cfg Config) domain.ProviderConfig {
	p := Defaults()
	p.ClientID = cfg.ClientID
	p.ClientSecret = cfg.ClientSecret
	if len(cfg.Scopes) > 0 {
		p.Scopes = cfg.Scopes
	}
	return p
}

// Defaults returns Discord's endpoints without credentials. Discord
// authenticates the user endpoint with a Bearer token and names the login
// identifier "username".
func Defaults() domain.ProviderConfig {
	return domain.ProviderConfig{
		Name:         ProviderName,
		DisplayName:  "Discord",
		AuthorizeURL: defaultAuthEndpoint,
		TokenURL:     defaultTokenURL,
		ProfileURL:   defaultUserURL,
		Scopes:       []string{"identify", "email"},
		AuthScheme:   domain.SchemeBearer,
		LoginField:   "username",
	}
}
