package handlers

import (
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/homey/internal/domain"
	"github.com/MrSnakeDoc/homey/internal/editor"
	"github.com/MrSnakeDoc/homey/internal/httpserver/deps"
	"github.com/MrSnakeDoc/homey/internal/logger"
	"github.com/MrSnakeDoc/homey/internal/render"
)

const (
	// SaveFormField is the form field carrying the submitted configuration text
	SaveFormField = "json"
	// SavedRedirect is where a successful save sends the browser
	SavedRedirect = "/admin?saved=1"
)

// Admin renders the editor pre-filled with the canonical form of the live configuration
func Admin(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		message := ""
		if r.URL.Query().Has("saved") {
			message = render.SavedMessage
		}

		status := http.StatusOK
		text, err := domain.Canonical(d.Store.Read())
		if err != nil {
			d.Logger.Error("failed to serialize live config", logger.Error(err))
			text = []byte("{}")
			message = "Failed to serialize config: " + err.Error()
			status = http.StatusInternalServerError
		}

		renderAdmin(w, d, status, string(text), message)
	}
}

// Save runs one submission through the edit workflow
func Save(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, d.MaxSaveBytes)
		if err := r.ParseForm(); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				d.Logger.Warn("config submission too large",
					logger.String("remote_ip", r.RemoteAddr))
				renderAdmin(w, d, http.StatusRequestEntityTooLarge, "", "Submission too large.")
				return
			}
			renderAdmin(w, d, http.StatusBadRequest, "", "Malformed form submission: "+err.Error())
			return
		}

		submitted := r.PostForm.Get(SaveFormField)

		if _, err := d.Workflow.Save(r.Context(), submitted); err != nil {
			var saveErr *editor.SaveError
			if errors.As(err, &saveErr) {
				renderAdmin(w, d, saveErr.Kind.HTTPStatus(), saveErr.Submitted, saveErr.Message())
				return
			}
			d.Logger.Error("unexpected save failure", logger.Error(err))
			renderAdmin(w, d, http.StatusInternalServerError, submitted, "Save failed: "+err.Error())
			return
		}

		d.Logger.Info("config updated via editor",
			logger.String("remote_ip", r.RemoteAddr))
		http.Redirect(w, r, SavedRedirect, http.StatusSeeOther)
	}
}

func renderAdmin(w http.ResponseWriter, d deps.Deps, status int, text, message string) {
	body, err := d.Renderer.Admin(text, message)
	if err != nil {
		d.Logger.Error("failed to render admin", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	writeHTML(w, status, body, d.Logger)
}
