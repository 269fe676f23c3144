package deps

import (
	"time"

	"github.com/MrSnakeDoc/homey/internal/editor"
	"github.com/MrSnakeDoc/homey/internal/logger"
	"github.com/MrSnakeDoc/homey/internal/render"
	"github.com/MrSnakeDoc/homey/internal/store"
	redisstore "github.com/MrSnakeDoc/homey/internal/store/redis"
)

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	TimeNow      func() time.Time // for testing, defaults to time.Now
	AllowedHosts []string         // Host headers allowed to reach admin routes
	AllowedCIDRS []string         // IPs allowed to access healthz/readyz/infra endpoints
	AdminCIDRS   []string         // IPs allowed to access admin routes
	TrustProxy   bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)

	ConfigFile   string             // Path to the dashboard configuration file
	StaticDir    string             // Directory served under /static (empty disables)
	AdminEnabled bool               // Mount the editor routes
	MaxSaveBytes int64              // Body size cap for /admin/save
	SaveBurst    int                // Save rate limit burst per client IP
	SavePerMin   int                // Save rate limit refill per client IP per minute
	Store        *store.ConfigStore // Live configuration
	Workflow     *editor.Workflow   // Save pipeline
	Renderer     *render.Renderer   // Page renderer
	Mirror       *redisstore.Store  // Optional Redis mirror + usage counters (may be disabled)
}
