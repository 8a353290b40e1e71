package discord

import (
	"testing"

	"github.com/BlackMission/sociallogin/internal/domain"
)

func TestNew_UsesCredentialsAndDefaults(t *testing.T) {
	p := New(Config{
		ClientID:     "test-client-id",
		ClientSecret: "test-client-secret",
	})

	if p.Name != "discord" {
		t.Errorf("expected name 'discord', got %q", p.Name)
	}
	if p.ClientID != "test-client-id" || p.ClientSecret != "test-client-secret" {
		t.Errorf("unexpected credentials: %q / %q", p.ClientID, p.ClientSecret)
	}
	if p.AuthScheme != domain.SchemeBearer {
		t.Errorf("expected Bearer scheme, got %q", p.AuthScheme)
	}
	if p.LoginField != "username" {
		t.Errorf("expected login field 'username', got %q", p.LoginField)
	}
	if len(p.Scopes) != 2 || p.Scopes[0] != "identify" || p.Scopes[1] != "email" {
		t.Errorf("expected default scopes [identify email], got %v", p.Scopes)
	}
}

func TestNew_CustomScopes(t *testing.T) {
	p := New(Config{ClientID: "id", Scopes: []string{"identify", "guilds"}})

	if len(p.Scopes) != 2 || p.Scopes[1] != "guilds" {
		t.Errorf("expected scopes [identify guilds], got %v", p.Scopes)
	}
}

func TestDefaults_HasNoCredentials(t *testing.T) {
	p := Defaults()
	if p.ClientID != "" || p.ClientSecret != "" {
		t.Error("defaults must not carry credentials")
	}
	if p.TokenURL != "https://discord.com/api/oauth2/token" {
		t.Errorf("unexpected token URL %q", p.TokenURL)
	}
}
