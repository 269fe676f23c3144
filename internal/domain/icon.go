package domain

import (
	"fmt"
	"strings"
)

// IconCDNTemplate is the URL used for links that do not declare an icon.
// The single verb receives the slug derived from the link name.
const IconCDNTemplate = "https://cdn.jsdelivr.net/gh/selfhst/icons@main/webp/%s.webp"

// ResolveIcon returns the icon source for a link.
//
// An explicit icon is returned verbatim. Otherwise the name is lower-cased,
// spaces become hyphens and the result is embedded into IconCDNTemplate.
// Other characters are not escaped: odd names give odd URLs.
func ResolveIcon(l Link) string {
	if l.Icon != nil {
		return *l.Icon
	}
	return fmt.Sprintf(IconCDNTemplate, iconSlug(l.Name))
}

func iconSlug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
