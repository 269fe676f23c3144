package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/homey/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready    bool   `json:"ready"`
	Links    int    `json:"links"`
	Revision uint64 `json:"revision"`
}

// Readyz reports ready once a configuration has been loaded into the store
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")

		ready := d.Store != nil && !d.Store.LoadedAt().IsZero()
		resp := readyzResponse{Ready: ready}
		if ready {
			resp.Links = d.Store.Count()
			resp.Revision = d.Store.Revision()
		}

		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
