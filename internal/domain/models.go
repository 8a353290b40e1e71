package domain

// Authorization header schemes understood by the identity client.
const (
	SchemeToken  = "token"
	SchemeBearer = "Bearer"
)

// DefaultLoginField is the profile JSON path holding the login identifier.
const DefaultLoginField = "login"

// ProviderConfig describes an external OAuth2 identity provider.
type ProviderConfig struct {
	Name         string   `yaml:"name" json:"name"`
	DisplayName  string   `yaml:"display_name" json:"display_name"`
	AuthorizeURL string   `yaml:"authorize_url" json:"authorize_url"`
	TokenURL     string   `yaml:"token_url" json:"token_url"`
	ProfileURL   string   `yaml:"profile_url" json:"profile_url"`
	ClientID     string   `yaml:"client_id" json:"client_id"`
	ClientSecret string   `yaml:"client_secret" json:"-"`
	Scopes       []string `yaml:"scopes" json:"scopes,omitempty"`
	AuthScheme   string   `yaml:"auth_scheme" json:"auth_scheme"`
	LoginField   string   `yaml:"login_field" json:"login_field"`
}

// Label returns the human readable provider name.
func (p ProviderConfig) Label() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Name
}

// Profile is the identity record returned by a provider's user endpoint.
// Only Login is interpreted; the rest is passed through.
type Profile struct {
	Login       string `json:"login"`
	ID          int64  `json:"id,omitempty"`
	NodeID      string `json:"node_id,omitempty"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	HTMLURL     string `json:"html_url,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Blog        string `json:"blog,omitempty"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	Type        string `json:"type,omitempty"`
	SiteAdmin   bool   `json:"site_admin,omitempty"`
	Followers   int    `json:"followers,omitempty"`
	Following   int    `json:"following,omitempty"`
	PublicRepos int    `json:"public_repos,omitempty"`
	PublicGists int    `json:"public_gists,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}
