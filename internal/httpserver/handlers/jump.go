package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MrSnakeDoc/homey/internal/domain"
	"github.com/MrSnakeDoc/homey/internal/httpserver/deps"
	"github.com/MrSnakeDoc/homey/internal/logger"
)

// usageLookupTimeout bounds the Redis round trips made by a jump
const usageLookupTimeout = 500 * time.Millisecond

// Jump redirects to the link that best matches ?q=, or back to the dashboard
func Jump(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))

		// Empty query -> dashboard
		if query == "" {
			d.Logger.Debug("empty jump query, redirecting to dashboard")
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		doc := d.Store.Read()
		usage := lookupUsage(r.Context(), d)

		candidates := domain.RankLinks(domain.ParseQuery(query), doc.Links, usage)
		if len(candidates) == 0 {
			d.Logger.Info("no matching link found",
				logger.String("query", query))
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		best := candidates[0]
		d.Logger.Info("resolved jump",
			logger.String("query", query),
			logger.String("link", best.Link.Name),
			logger.String("score", fmt.Sprintf("%.2f", best.TotalScore)))

		// Increment usage counter (best effort)
		if d.Mirror.Enabled() {
			ctx, cancel := context.WithTimeout(r.Context(), usageLookupTimeout)
			if err := d.Mirror.IncrementUsage(ctx, best.Link.ID()); err != nil {
				d.Logger.Debug("failed to increment usage", logger.Error(err))
			}
			cancel()
		}

		http.Redirect(w, r, best.Link.URL, http.StatusFound)
	}
}

func lookupUsage(parent context.Context, d deps.Deps) map[string]int64 {
	if !d.Mirror.Enabled() {
		return nil
	}

	ctx, cancel := context.WithTimeout(parent, usageLookupTimeout)
	defer cancel()

	usage, err := d.Mirror.GetUsageStats(ctx)
	if err != nil {
		d.Logger.Debug("usage stats unavailable, ranking lexically", logger.Error(err))
		return nil
	}
	return usage
}
