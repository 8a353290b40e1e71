// Package providers resolves built-in provider presets by name.
package providers

import (
	"strings"

	"github.com/BlackMission/sociallogin/internal/domain"
	"github.com/BlackMission/sociallogin/internal/providers/discord"
	"github.com/BlackMission/sociallogin/internal/providers/github"
)

var presets = map[string]func() domain.ProviderConfig{
	"github":  github.Defaults,
	"discord": discord.Defaults,
}

// Preset returns the default configuration of a built-in provider.
// Names are matched case-insensitively.
func Preset(name string) (domain.ProviderConfig, bool) {
	fn, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return domain.ProviderConfig{}, false
	}
	return fn(), true
}
