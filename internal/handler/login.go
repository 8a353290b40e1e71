package handler

import (
	"net/http"

	"github.com/BlackMission/sociallogin/internal/login"
	"github.com/BlackMission/sociallogin/internal/redirect"
	"github.com/BlackMission/sociallogin/internal/render"
)

// Login handles GET /login/{provider}. The same route starts the handshake
// and receives the provider's callback.
func Login(flow *login.Flow, renderer *render.Renderer, builder redirect.Builder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Parse from the escaped path so names containing '/' survive.
		provider, _ := redirect.ProviderFromPath(r.URL.EscapedPath())

		res := flow.Login(r.Context(), login.Request{
			Provider: provider,
			Query:    r.URL.Query(),
			CallbackURL: func(name string) string {
				return builder.CallbackURL(r, name)
			},
		})
		writeResult(w, r, renderer, res)
	}
}
