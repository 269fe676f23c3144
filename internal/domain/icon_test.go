package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveIcon(t *testing.T) {
	tests := []struct {
		name string
		link Link
		want string
	}{
		{
			name: "explicit icon is used verbatim",
			link: Link{Name: "Plex Media", Icon: StringPtr("https://example/x.png")},
			want: "https://example/x.png",
		},
		{
			name: "derived from name",
			link: Link{Name: "Plex Media"},
			want: "https://cdn.jsdelivr.net/gh/selfhst/icons@main/webp/plex-media.webp",
		},
		{
			name: "alt name does not affect the icon",
			link: Link{Name: "Home Assistant", AltName: StringPtr("HA")},
			want: "https://cdn.jsdelivr.net/gh/selfhst/icons@main/webp/home-assistant.webp",
		},
		{
			name: "other characters are not escaped",
			link: Link{Name: "A/B ?"},
			want: "https://cdn.jsdelivr.net/gh/selfhst/icons@main/webp/a/b-?.webp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveIcon(tt.link))
		})
	}
}

func TestLinkID(t *testing.T) {
	assert.Equal(t, "plex-media", Link{Name: "Plex Media", AltName: StringPtr("Movies")}.ID())
}
