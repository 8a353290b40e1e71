package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/BlackMission/sociallogin/internal/domain"
	"github.com/BlackMission/sociallogin/internal/providers"
	"github.com/BlackMission/sociallogin/internal/providers/discord"
	"github.com/BlackMission/sociallogin/internal/providers/github"
)

// Config is the top-level application configuration.
type Config struct {
	Server          ServerConfig
	Log             LogConfig
	OutboundTimeout time.Duration
	// Providers in registration order: GitHub, Discord, then file entries.
	Providers []domain.ProviderConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    int
	Host    string
	BaseURL string
	// SecureRedirect builds https callback URLs when BaseURL is unset.
	SecureRedirect bool
}

// LogConfig holds logger settings.
type LogConfig struct {
	Env   string
	Level string
}

type rawEnv struct {
	Host            string        `env:"HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"PORT" envDefault:"8080"`
	BaseURL         string        `env:"BASE_URL"`
	SecureRedirect  bool          `env:"SECURE_REDIRECT" envDefault:"false"`
	AppEnv          string        `env:"APP_ENV" envDefault:"dev"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	OutboundTimeout time.Duration `env:"OUTBOUND_TIMEOUT" envDefault:"10s"`
	ProvidersFile   string        `env:"PROVIDERS_FILE"`

	GitHubClientID     string   `env:"GITHUB_CLIENT_ID"`
	GitHubClientSecret string   `env:"GITHUB_CLIENT_SECRET"`
	GitHubScopes       []string `env:"GITHUB_SCOPES" envSeparator:","`

	DiscordClientID     string   `env:"DISCORD_CLIENT_ID"`
	DiscordClientSecret string   `env:"DISCORD_CLIENT_SECRET"`
	DiscordScopes       []string `env:"DISCORD_SCOPES" envSeparator:","`
}

// providerFile is the layout of PROVIDERS_FILE.
type providerFile struct {
	Providers []fileProvider `yaml:"providers"`
}

type fileProvider struct {
	domain.ProviderConfig `yaml:",inline"`
	// Preset names a built-in provider whose settings fill unset fields.
	Preset string `yaml:"preset"`
}

// Load reads an optional dotenv file and then the environment. A missing
// dotenv file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: loading %s: %v", domain.ErrInvalidConfig, envFile, err)
		}
	}
	return LoadFromEnv()
}

// LoadFromEnv reads configuration from environment variables and the
// optional provider file they point at.
func LoadFromEnv() (*Config, error) {
	var raw rawEnv
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           raw.Port,
			Host:           raw.Host,
			BaseURL:        strings.TrimRight(raw.BaseURL, "/"),
			SecureRedirect: raw.SecureRedirect,
		},
		Log: LogConfig{
			Env:   raw.AppEnv,
			Level: raw.LogLevel,
		},
		OutboundTimeout: raw.OutboundTimeout,
	}

	// GitHub provider, enabled by presence of GITHUB_CLIENT_ID
	if raw.GitHubClientID != "" {
		cfg.Providers = append(cfg.Providers, github.New(github.Config{
			ClientID:     raw.GitHubClientID,
			ClientSecret: raw.GitHubClientSecret,
			Scopes:       trimCSV(raw.GitHubScopes),
		}))
	}

	// Discord provider, enabled by presence of DISCORD_CLIENT_ID
	if raw.DiscordClientID != "" {
		cfg.Providers = append(cfg.Providers, discord.New(discord.Config{
			ClientID:     raw.DiscordClientID,
			ClientSecret: raw.DiscordClientSecret,
			Scopes:       trimCSV(raw.DiscordScopes),
		}))
	}

	if raw.ProvidersFile != "" {
		fromFile, err := loadProviderFile(raw.ProvidersFile)
		if err != nil {
			return nil, err
		}
		cfg.Providers = append(cfg.Providers, fromFile...)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadProviderFile reads a YAML provider list. ${VAR} references are
// expanded from the environment before parsing.
func loadProviderFile(path string) ([]domain.ProviderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading provider file: %v", domain.ErrInvalidConfig, err)
	}
	return parseProviderFile([]byte(os.ExpandEnv(string(data))))
}

func parseProviderFile(data []byte) ([]domain.ProviderConfig, error) {
	var pf providerFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("%w: parsing provider file: %v", domain.ErrInvalidConfig, err)
	}

	out := make([]domain.ProviderConfig, 0, len(pf.Providers))
	for i, fp := range pf.Providers {
		p := fp.ProviderConfig
		if fp.Preset != "" {
			preset, ok := providers.Preset(fp.Preset)
			if !ok {
				return nil, fmt.Errorf("%w: provider %d: unknown preset %q", domain.ErrInvalidConfig, i, fp.Preset)
			}
			// Fields set in the file win; the preset fills the rest.
			if err := mergo.Merge(&p, preset); err != nil {
				return nil, fmt.Errorf("%w: provider %d: merging preset: %v", domain.ErrInvalidConfig, i, err)
			}
		}
		p.Scopes = trimCSV(p.Scopes)
		out = append(out, p)
	}
	return out, nil
}

func validate(cfg *Config) error {
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("%w: PORT %d out of range", domain.ErrInvalidConfig, cfg.Server.Port)
	}
	if cfg.Server.BaseURL != "" {
		if err := checkURL(cfg.Server.BaseURL); err != nil {
			return fmt.Errorf("%w: BASE_URL: %v", domain.ErrInvalidConfig, err)
		}
	}
	if cfg.OutboundTimeout <= 0 {
		return fmt.Errorf("%w: OUTBOUND_TIMEOUT must be positive", domain.ErrInvalidConfig)
	}
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("%w: at least one provider must be configured (GITHUB_CLIENT_ID, DISCORD_CLIENT_ID or PROVIDERS_FILE)", domain.ErrMissingConfig)
	}
	for _, p := range cfg.Providers {
		if err := validateProvider(p); err != nil {
			return err
		}
	}
	return nil
}

func validateProvider(p domain.ProviderConfig) error {
	if p.Name == "" {
		return fmt.Errorf("%w: provider name is required", domain.ErrMissingConfig)
	}
	required := []struct {
		field, value string
	}{
		{"client_id", p.ClientID},
		{"client_secret", p.ClientSecret},
		{"authorize_url", p.AuthorizeURL},
		{"token_url", p.TokenURL},
		{"profile_url", p.ProfileURL},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: provider %q %s is required", domain.ErrMissingConfig, p.Name, r.field)
		}
	}
	for _, u := range []string{p.AuthorizeURL, p.TokenURL, p.ProfileURL} {
		if err := checkURL(u); err != nil {
			return fmt.Errorf("%w: provider %q: %v", domain.ErrInvalidConfig, p.Name, err)
		}
	}
	switch {
	case p.AuthScheme == "",
		strings.EqualFold(p.AuthScheme, domain.SchemeToken),
		strings.EqualFold(p.AuthScheme, domain.SchemeBearer):
	default:
		return fmt.Errorf("%w: provider %q auth_scheme %q (want token or Bearer)", domain.ErrInvalidConfig, p.Name, p.AuthScheme)
	}
	return nil
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%q is not an absolute http(s) URL", raw)
	}
	return nil
}

// trimCSV removes blank entries and surrounding whitespace.
func trimCSV(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	result := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
