package homepage

import (
	"errors"
	"net/url"
	"strings"

	"github.com/MrSnakeDoc/homey/internal/domain"
)

// ErrNoLinks is returned when no service could be converted
var ErrNoLinks = errors.New("no valid services found in homepage config")

// Skipped describes a service that was not converted
type Skipped struct {
	Group   string
	Service string
	Reason  string
}

// Mapper converts Homepage services to dashboard links
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapDocument converts services to a document titled title, keeping file order.
// An empty title falls back to the default one.
func (m *Mapper) MapDocument(config ServicesConfig, title string) (domain.Document, []Skipped, error) {
	if strings.TrimSpace(title) == "" {
		title = domain.DefaultTitle
	}

	doc := domain.Document{Title: title, Links: []domain.Link{}}
	var skipped []Skipped

	for _, group := range config {
		for _, svc := range group.Services {
			link, reason := mapService(svc)
			if reason != "" {
				skipped = append(skipped, Skipped{Group: group.Name, Service: svc.Name, Reason: reason})
				continue
			}
			doc.Links = append(doc.Links, link)
		}
	}

	if len(doc.Links) == 0 {
		return domain.Document{}, skipped, ErrNoLinks
	}
	return doc, skipped, nil
}

func mapService(svc Service) (domain.Link, string) {
	href := strings.TrimSpace(svc.Props.Href)
	if href == "" {
		return domain.Link{}, "missing href"
	}
	if !isAbsoluteHTTP(href) {
		return domain.Link{}, "href is not an absolute http(s) URL"
	}

	link := domain.Link{Name: svc.Name, URL: href}

	// Homepage icon names (e.g. "jellyfin.svg", "mdi-home") are resolved by Homepage
	// itself; only absolute URLs are meaningful here.
	if icon := strings.TrimSpace(svc.Props.Icon); isAbsoluteHTTP(icon) {
		link.Icon = domain.StringPtr(icon)
	}

	return link, ""
}

func isAbsoluteHTTP(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
