package handler

import (
	"net/http"

	"github.com/BlackMission/sociallogin/internal/login"
	"github.com/BlackMission/sociallogin/internal/render"
)

// Index handles GET / with the provider selection page.
func Index(flow *login.Flow, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, r, renderer, flow.Index(r.Context()))
	}
}
