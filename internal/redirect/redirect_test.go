package redirect

import (
	"crypto/tls"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallbackURL(t *testing.T) {
	tests := []struct {
		name    string
		builder Builder
		host    string
		tls     bool
		want    string
	}{
		{"default port omitted", Builder{}, "example.com", false, "http://example.com/login/GitHub"},
		{"explicit 80 omitted", Builder{}, "example.com:80", false, "http://example.com/login/GitHub"},
		{"custom port kept", Builder{}, "localhost:8080", false, "http://localhost:8080/login/GitHub"},
		{"secure flag", Builder{Secure: true}, "example.com:8443", false, "https://example.com:8443/login/GitHub"},
		{"80 dropped even when secure", Builder{Secure: true}, "example.com:80", false, "https://example.com/login/GitHub"},
		{"tls request keeps insecure scheme", Builder{}, "example.com", true, "http://example.com:443/login/GitHub"},
		{"ipv6", Builder{}, "[::1]:9000", false, "http://[::1]:9000/login/GitHub"},
		{"base url override", Builder{BaseURL: "https://auth.example.com/"}, "internal:8080", false, "https://auth.example.com/login/GitHub"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/login/GitHub", nil)
			r.Host = tt.host
			if tt.tls {
				r.TLS = &tls.ConnectionState{}
			}
			assert.Equal(t, tt.want, tt.builder.CallbackURL(r, "GitHub"))
		})
	}
}

func TestLoginPath(t *testing.T) {
	assert.Equal(t, "/login/GitHub", LoginPath("GitHub"))
	assert.Equal(t, "/login/my%20idp", LoginPath("my idp"))
	assert.Equal(t, "/login/a%2Fb", LoginPath("a/b"))
}

func TestProviderRoundTrip(t *testing.T) {
	b := Builder{}
	for _, name := range []string{"GitHub", "discord", "my idp", "a/b", "ünï"} {
		r := httptest.NewRequest("GET", "/", nil)
		r.Host = "localhost:8080"

		got, ok := ProviderFromPath(b.CallbackURL(r, name))
		require.True(t, ok, name)
		assert.Equal(t, name, got)

		got, ok = ProviderFromPath(LoginPath(name))
		require.True(t, ok, name)
		assert.Equal(t, name, got)
	}
}

func TestProviderRoundTrip_BaseURLWithLoginSegment(t *testing.T) {
	b := Builder{BaseURL: "https://sso.example.com/login/app"}
	r := httptest.NewRequest("GET", "/", nil)

	for _, name := range []string{"GitHub", "a/b", "login"} {
		callback := b.CallbackURL(r, name)
		got, ok := ProviderFromPath(callback)
		require.True(t, ok, callback)
		assert.Equal(t, name, got)
	}
}

func TestProviderFromPath_NotLoginRoute(t *testing.T) {
	_, ok := ProviderFromPath("/health")
	assert.False(t, ok)

	_, ok = ProviderFromPath("/login/a/b")
	assert.False(t, ok)
}
