package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BlackMission/sociallogin/internal/domain"
	"github.com/BlackMission/sociallogin/internal/providers/discord"
	"github.com/BlackMission/sociallogin/internal/providers/github"
)

// setRequiredEnv sets the minimum required env vars for a valid config.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GITHUB_CLIENT_ID", "gh-id")
	t.Setenv("GITHUB_CLIENT_SECRET", "gh-secret")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromEnv_FullConfig(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("BASE_URL", "https://auth.example.com/")
	t.Setenv("SECURE_REDIRECT", "true")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OUTBOUND_TIMEOUT", "3s")
	t.Setenv("GITHUB_CLIENT_ID", "gh-id")
	t.Setenv("GITHUB_CLIENT_SECRET", "gh-secret")
	t.Setenv("GITHUB_SCOPES", "read:user, user:email")
	t.Setenv("DISCORD_CLIENT_ID", "discord-id")
	t.Setenv("DISCORD_CLIENT_SECRET", "discord-secret")
	t.Setenv("DISCORD_SCOPES", "identify,email,guilds")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "https://auth.example.com", cfg.Server.BaseURL)
	assert.True(t, cfg.Server.SecureRedirect)
	assert.Equal(t, LogConfig{Env: "prod", Level: "debug"}, cfg.Log)
	assert.Equal(t, 3*time.Second, cfg.OutboundTimeout)

	require.Len(t, cfg.Providers, 2)
	gh := cfg.Providers[0]
	assert.Equal(t, github.ProviderName, gh.Name)
	assert.Equal(t, "gh-id", gh.ClientID)
	assert.Equal(t, "gh-secret", gh.ClientSecret)
	assert.Equal(t, []string{"read:user", "user:email"}, gh.Scopes)
	assert.Equal(t, domain.SchemeToken, gh.AuthScheme)

	dc := cfg.Providers[1]
	assert.Equal(t, discord.ProviderName, dc.Name)
	assert.Equal(t, []string{"identify", "email", "guilds"}, dc.Scopes)
	assert.Equal(t, domain.SchemeBearer, dc.AuthScheme)
}

func TestLoadFromEnv_DefaultValues(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.False(t, cfg.Server.SecureRedirect)
	assert.Equal(t, 10*time.Second, cfg.OutboundTimeout)
	assert.Equal(t, []string{"read:user"}, cfg.Providers[0].Scopes)
}

func TestLoadFromEnv_DiscordDefaultScopes(t *testing.T) {
	t.Setenv("DISCORD_CLIENT_ID", "discord-id")
	t.Setenv("DISCORD_CLIENT_SECRET", "discord-secret")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	require.Len(t, cfg.Providers, 1)
	assert.Equal(t, []string{"identify", "email"}, cfg.Providers[0].Scopes)
}

func TestLoadFromEnv_NoProviders(t *testing.T) {
	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingConfig), "got %v", err)
}

func TestLoadFromEnv_MissingSecret(t *testing.T) {
	t.Setenv("GITHUB_CLIENT_ID", "gh-id")

	_, err := LoadFromEnv()
	assert.ErrorIs(t, err, domain.ErrMissingConfig)
	assert.ErrorContains(t, err, "client_secret")
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PORT", "not-a-number"},
		{"PORT", "70000"},
		{"SECURE_REDIRECT", "maybe"},
		{"OUTBOUND_TIMEOUT", "soon"},
		{"OUTBOUND_TIMEOUT", "0s"},
		{"BASE_URL", "auth.example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadFromEnv()
			assert.ErrorIs(t, err, domain.ErrInvalidConfig)
		})
	}
}

func TestLoadFromEnv_ProviderFile(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GITLAB_SECRET", "gl-secret")
	t.Setenv("GHE_SECRET", "ghe-secret")
	t.Setenv("PROVIDERS_FILE", writeFile(t, "providers.yaml", `
providers:
  - name: gitlab
    display_name: GitLab
    authorize_url: https://gitlab.com/oauth/authorize
    token_url: https://gitlab.com/oauth/token
    profile_url: https://gitlab.com/api/v4/user
    client_id: gl-id
    client_secret: ${GITLAB_SECRET}
    scopes: [read_user]
    auth_scheme: Bearer
    login_field: username
  - name: github-enterprise
    preset: github
    profile_url: https://ghe.example.com/api/v3/user
    client_id: ghe-id
    client_secret: ${GHE_SECRET}
`))

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	require.Len(t, cfg.Providers, 3)

	gl := cfg.Providers[1]
	assert.Equal(t, "gitlab", gl.Name)
	assert.Equal(t, "GitLab", gl.Label())
	assert.Equal(t, "gl-secret", gl.ClientSecret)
	assert.Equal(t, []string{"read_user"}, gl.Scopes)
	assert.Equal(t, "username", gl.LoginField)

	ghe := cfg.Providers[2]
	assert.Equal(t, "github-enterprise", ghe.Name)
	assert.Equal(t, "ghe-secret", ghe.ClientSecret)
	assert.Equal(t, "https://ghe.example.com/api/v3/user", ghe.ProfileURL)
	assert.Equal(t, github.TokenEndpoint, ghe.TokenURL)
	assert.Equal(t, domain.SchemeToken, ghe.AuthScheme)
	assert.Equal(t, "GitHub", ghe.DisplayName)
}

func TestLoadFromEnv_ProviderFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"malformed yaml", "providers: [", domain.ErrInvalidConfig},
		{"unknown preset", "providers:\n  - name: x\n    preset: myspace\n", domain.ErrInvalidConfig},
		{"missing urls", "providers:\n  - name: x\n    client_id: a\n    client_secret: b\n", domain.ErrMissingConfig},
		{"bad scheme", "providers:\n  - preset: discord\n    client_id: a\n    client_secret: b\n    auth_scheme: basic\n", domain.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv("PROVIDERS_FILE", writeFile(t, "providers.yaml", tt.content))

			_, err := LoadFromEnv()
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadFromEnv_ProviderFileMissing(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PROVIDERS_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := LoadFromEnv()
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestLoad_DotEnvFile(t *testing.T) {
	// Pre-register the keys so t.Setenv restores them after godotenv sets them.
	t.Setenv("GITHUB_CLIENT_ID", "")
	t.Setenv("GITHUB_CLIENT_SECRET", "")
	os.Unsetenv("GITHUB_CLIENT_ID")
	os.Unsetenv("GITHUB_CLIENT_SECRET")

	path := writeFile(t, ".env", "GITHUB_CLIENT_ID=from-file\nGITHUB_CLIENT_SECRET=s3cret\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Providers[0].ClientID)
}

func TestLoad_MissingDotEnvIgnored(t *testing.T) {
	setRequiredEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), ".env"))
	assert.NoError(t, err)
}

func TestTrimCSV(t *testing.T) {
	tests := []struct {
		input []string
		want  []string
	}{
		{nil, nil},
		{[]string{"a"}, []string{"a"}},
		{[]string{"a", "b", "c"}, []string{"a", "b", "c"}},
		{[]string{"a", " b ", "c"}, []string{"a", "b", "c"}},
		{[]string{" a ", ""}, []string{"a"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, trimCSV(tt.input), "trimCSV(%q)", tt.input)
	}
}
