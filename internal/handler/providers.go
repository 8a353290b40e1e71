package handler

import (
	"net/http"

	"github.com/BlackMission/sociallogin/internal/auth"
)

// Providers handles GET /providers with the registered names in
// registration order.
func Providers(registry *auth.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, registry.Names())
	}
}
