package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/homey/internal/httpserver/deps"
	"github.com/MrSnakeDoc/homey/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/homey/internal/httpserver/mw"
)

func init() { Register(registerAdmin) }

func registerAdmin(r chi.Router, d deps.Deps) {
	if !d.AdminEnabled {
		d.Logger.Info("admin editor disabled")
		return
	}

	r.Group(func(admin chi.Router) {
		admin.Use(mw.AllowOnlyCIDRS(d.AdminCIDRS, d.TrustProxy, d.Logger))
		admin.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))

		admin.Get("/admin", handlers.Admin(d))
		admin.With(mw.RateLimit(mw.RateLimitConfig{
			Burst:             d.SaveBurst,
			RefillPerIPPerMin: d.SavePerMin,
			MaxEntries:        10000,
			TrustProxy:        d.TrustProxy,
			Logger:            d.Logger,
		})).Post("/admin/save", handlers.Save(d))
	})
}
