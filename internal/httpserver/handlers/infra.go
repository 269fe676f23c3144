package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/homey/internal/httpserver/deps"
)

const timeLayout = "2006-01-02 15:04:05"

type componentStatus struct {
	OK          bool   `json:"ok"`
	LinksLoaded *int   `json:"links_loaded,omitempty"`
	Revision    *int64 `json:"revision,omitempty"`
	File        string `json:"file,omitempty"`
	LoadedAt    string `json:"loaded_at,omitempty"`
	LastSave    string `json:"last_save,omitempty"`
	Saves       *int64 `json:"saves,omitempty"`
	Mode        string `json:"mode,omitempty"`
	Impact      string `json:"impact,omitempty"`
	Error       string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of the configuration store, the editor and Redis
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")

		components := map[string]componentStatus{
			"config": configStatus(d),
			"editor": editorStatus(d),
			"redis":  checkRedis(r.Context(), d),
		}

		response := infraResponse{
			Mode:       determineMode(components),
			Components: components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

func configStatus(d deps.Deps) componentStatus {
	count := d.Store.Count()
	revision := int64(d.Store.Revision())

	lastSave := "never"
	if t := d.Store.LastReplaced(); !t.IsZero() {
		lastSave = t.Format(timeLayout)
	}

	return componentStatus{
		OK:          true,
		LinksLoaded: &count,
		Revision:    &revision,
		File:        d.ConfigFile,
		LoadedAt:    d.Store.LoadedAt().Format(timeLayout),
		LastSave:    lastSave,
	}
}

func editorStatus(d deps.Deps) componentStatus {
	if !d.AdminEnabled {
		return componentStatus{OK: true, Mode: "disabled", Impact: "read-only-dashboard"}
	}
	return componentStatus{OK: true, Mode: "enabled"}
}

func determineMode(components map[string]componentStatus) string {
	// An empty dashboard still serves, but is worth flagging
	if cfg, exists := components["config"]; exists {
		if cfg.LinksLoaded != nil && *cfg.LinksLoaded == 0 {
			return "empty"
		}
	}

	// Redis down = degraded (no mirror, no usage learning)
	if redis, exists := components["redis"]; exists && !redis.OK && redis.Mode != "disabled" {
		return "degraded"
	}

	return "operational"
}

func checkRedis(parent context.Context, d deps.Deps) componentStatus {
	if !d.Mirror.Enabled() {
		return componentStatus{
			OK:     true,
			Mode:   "disabled",
			Impact: "mirror-and-usage-learning-disabled",
		}
	}

	ctx, cancel := context.WithTimeout(parent, 2*time.Second)
	defer cancel()

	if err := d.Mirror.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "mirror-and-usage-learning-unavailable",
			Error:  err.Error(),
		}
	}

	status := componentStatus{OK: true, Mode: "optimal", LastSave: "never"}
	if ms, err := d.Mirror.Status(ctx); err == nil {
		saves := ms.Saves
		status.Saves = &saves
		if !ms.SavedAt.IsZero() {
			status.LastSave = ms.SavedAt.Format(timeLayout)
		}
	}
	return status
}
