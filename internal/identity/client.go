// Package identity fetches the user's profile from a provider's user
// endpoint once an access credential has been obtained.
package identity

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/BlackMission/sociallogin/internal/domain"
)

const maxProfileBytes = 1 << 20

// HeaderStrategy attaches a credential value to an outgoing request.
type HeaderStrategy func(h http.Header, value string)

// TokenHeader sends "Authorization: token <value>".
func TokenHeader(h http.Header, value string) {
	h.Set("Authorization", domain.SchemeToken+" "+value)
}

// BearerHeader sends "Authorization: Bearer <value>".
func BearerHeader(h http.Header, value string) {
	h.Set("Authorization", domain.SchemeBearer+" "+value)
}

// StrategyFor maps a configured auth scheme to its header strategy.
// An empty or unknown scheme falls back to the "token" form.
func StrategyFor(scheme string) HeaderStrategy {
	if strings.EqualFold(scheme, domain.SchemeBearer) {
		return BearerHeader
	}
	return TokenHeader
}

// Client calls provider user endpoints.
type Client struct {
	http *http.Client
}

// New creates a Client on top of the shared outbound HTTP client.
func New(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{http: httpClient}
}

// FetchProfile performs one GET against provider.ProfileURL. Every failure,
// including an empty login, is reported as domain.ErrProfileFetch.
func (c *Client) FetchProfile(ctx context.Context, cred domain.AccessCredential, provider domain.ProviderConfig) (*domain.Profile, error) {
	bearer, ok := domain.BearerValue(cred)
	if !ok {
		return nil, fmt.Errorf("%w: %w", domain.ErrProfileFetch, domain.ErrMissingCredential)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, provider.ProfileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", domain.ErrProfileFetch, err)
	}
	StrategyFor(provider.AuthScheme)(req.Header, bearer)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProfileFetch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProfileBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrProfileFetch, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", domain.ErrProfileFetch, resp.StatusCode)
	}

	profile, err := ParseProfile(body, provider.LoginField)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProfileFetch, err)
	}
	return profile, nil
}

// ParseProfile decodes a profile document. Unknown fields are ignored and
// optional fields of the wrong type are left empty; only loginField must be
// present and non-empty.
func ParseProfile(body []byte, loginField string) (*domain.Profile, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("malformed JSON body")
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return nil, fmt.Errorf("expected JSON object, got %s", doc.Type)
	}

	if loginField == "" {
		loginField = domain.DefaultLoginField
	}
	login := doc.Get(loginField)
	if login.Type != gjson.String || login.Str == "" {
		return nil, fmt.Errorf("missing %q in profile", loginField)
	}

	return &domain.Profile{
		Login:       login.Str,
		ID:          doc.Get("id").Int(),
		NodeID:      str(doc, "node_id"),
		Name:        str(doc, "name"),
		Email:       str(doc, "email"),
		AvatarURL:   str(doc, "avatar_url"),
		HTMLURL:     str(doc, "html_url"),
		Bio:         str(doc, "bio"),
		Blog:        str(doc, "blog"),
		Company:     str(doc, "company"),
		Location:    str(doc, "location"),
		Type:        str(doc, "type"),
		SiteAdmin:   doc.Get("site_admin").Bool(),
		Followers:   int(doc.Get("followers").Int()),
		Following:   int(doc.Get("following").Int()),
		PublicRepos: int(doc.Get("public_repos").Int()),
		PublicGists: int(doc.Get("public_gists").Int()),
		CreatedAt:   str(doc, "created_at"),
		UpdatedAt:   str(doc, "updated_at"),
	}, nil
}

func str(doc gjson.Result, path string) string {
	v := doc.Get(path)
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}
