package routes

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/homey/internal/httpserver/deps"
	"github.com/MrSnakeDoc/homey/internal/httpserver/handlers"
)

func init() { Register(registerDashboard) }

func registerDashboard(r chi.Router, d deps.Deps) {
	r.Get("/", handlers.Index(d))
	r.Get("/go", handlers.Jump(d))

	if d.StaticDir == "" {
		return
	}
	if info, err := os.Stat(d.StaticDir); err != nil || !info.IsDir() {
		d.Logger.Warnf("static directory %q not found, /static disabled", d.StaticDir)
		return
	}
	fs := http.StripPrefix("/static/", http.FileServer(http.Dir(d.StaticDir)))
	r.Get("/static/*", fs.ServeHTTP)
}
