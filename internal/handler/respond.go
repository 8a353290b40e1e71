package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/BlackMission/sociallogin/internal/login"
	"github.com/BlackMission/sociallogin/internal/observability/logger"
	"github.com/BlackMission/sociallogin/internal/render"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeResult turns a flow result into a response. Every page is sent with
// status 200; only a template failure yields a 500.
func writeResult(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, res login.Result) {
	if res.Page() == login.PageRedirect {
		http.Redirect(w, r, res.Location, http.StatusFound)
		return
	}

	writeHTML(r.Context(), w, func(buf io.Writer) error {
		switch res.Page() {
		case login.PageError:
			return renderer.Error(buf, res.Messages)
		case login.PageSuccess:
			return renderer.Success(buf, res.Login)
		default:
			return renderer.ChooseProvider(buf, res.Providers)
		}
	})
}

func writeHTML(ctx context.Context, w http.ResponseWriter, fn func(io.Writer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		logger.From(ctx).Error("rendering page", logger.Component("handler"), logger.Err(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
