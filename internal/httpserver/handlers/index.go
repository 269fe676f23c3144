package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/homey/internal/httpserver/deps"
	"github.com/MrSnakeDoc/homey/internal/logger"
)

// Index renders the dashboard from the current configuration snapshot
func Index(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc := d.Store.Read()

		body, err := d.Renderer.Index(doc)
		if err != nil {
			d.Logger.Error("failed to render index", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		writeHTML(w, http.StatusOK, body, d.Logger)
	}
}

// writeHTML writes a rendered page with the given status
func writeHTML(w http.ResponseWriter, status int, body []byte, log logger.Logger) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Debug("failed to write response", logger.Error(err))
	}
}
