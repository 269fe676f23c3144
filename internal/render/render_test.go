package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/homey/internal/domain"
)

func sampleDocument() domain.Document {
	return domain.Document{
		Title: "Lab",
		Links: []domain.Link{
			{Name: "Plex Media", URL: "http://plex"},
			{Name: "Files", URL: "http://nas", AltName: domain.StringPtr("NAS")},
			{Name: "Custom", URL: "http://custom", Icon: domain.StringPtr("https://example/x.png")},
		},
	}
}

func TestIndex(t *testing.T) {
	out, err := New(Options{AdminEnabled: true}).Index(sampleDocument())
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "<title>Lab</title>")
	assert.Contains(t, html, "<h1>Lab</h1>")
	assert.Contains(t, html, `href="/admin"`)

	assert.Contains(t, html, `<a href="http://plex"><img class="icon" src="https://cdn.jsdelivr.net/gh/selfhst/icons@main/webp/plex-media.webp" alt=""><span class="label">Plex Media</span></a>`)
	assert.Contains(t, html, `<span class="label">NAS</span>`)
	assert.NotContains(t, html, `<span class="label">Files</span>`)
	assert.Contains(t, html, `src="https://example/x.png"`)
}

func TestIndex_PreservesLinkOrder(t *testing.T) {
	out, err := New(Options{}).Index(sampleDocument())
	require.NoError(t, err)
	html := string(out)

	plex := strings.Index(html, "http://plex")
	nas := strings.Index(html, "http://nas")
	custom := strings.Index(html, "http://custom")
	require.True(t, plex > 0 && nas > 0 && custom > 0)
	assert.Less(t, plex, nas)
	assert.Less(t, nas, custom)
}

func TestIndex_HidesEditLinkWhenAdminDisabled(t *testing.T) {
	out, err := New(Options{AdminEnabled: false}).Index(sampleDocument())
	require.NoError(t, err)
	assert.NotContains(t, string(out), `href="/admin"`)
}

func TestIndex_EscapesContent(t *testing.T) {
	doc := domain.Document{
		Title: "<script>x</script>",
		Links: []domain.Link{{Name: "a", URL: "http://a", AltName: domain.StringPtr("<b>bold</b>")}},
	}

	out, err := New(Options{}).Index(doc)
	require.NoError(t, err)
	html := string(out)

	assert.NotContains(t, html, "<script>x</script>")
	assert.Contains(t, html, "&lt;b&gt;bold&lt;/b&gt;")
}

func TestIndex_IsDeterministic(t *testing.T) {
	r := New(Options{AdminEnabled: true})
	first, err := r.Index(sampleDocument())
	require.NoError(t, err)
	second, err := r.Index(sampleDocument())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAdmin(t *testing.T) {
	out, err := New(Options{FileName: "dashboard.json"}).Admin("not json", "Invalid JSON: boom")
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, `<textarea id="json-editor" name="json" spellcheck="false">not json</textarea>`)
	assert.Contains(t, html, `<p class="notice">Invalid JSON: boom</p>`)
	assert.Contains(t, html, `<label for="json-editor">dashboard.json</label>`)
	assert.Contains(t, html, `action="/admin/save"`)
}

func TestAdmin_WithoutMessage(t *testing.T) {
	out, err := New(Options{}).Admin("{}", "")
	require.NoError(t, err)
	assert.NotContains(t, string(out), `class="notice"`)
	assert.Contains(t, string(out), `<label for="json-editor">config.json</label>`)
}

func TestAdmin_EscapesTextArea(t *testing.T) {
	out, err := New(Options{}).Admin(`</textarea><script>alert(1)</script>`, "")
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>alert(1)</script>")
}

func TestIndex_KeepsNonHTTPTargetsAndIcons(t *testing.T) {
	doc := domain.Document{
		Title: "Lab",
		Links: []domain.Link{
			{Name: "Share", URL: "smb://nas/share"},
			{Name: "Box", URL: "ssh://box", Icon: domain.StringPtr("data:image/png;base64,AAAA")},
		},
	}

	out, err := New(Options{}).Index(doc)
	require.NoError(t, err)
	html := string(out)

	assert.NotContains(t, html, "ZgotmplZ")
	assert.Contains(t, html, `<a href="smb://nas/share">`)
	assert.Contains(t, html, `<a href="ssh://box"><img class="icon" src="data:image/png;base64,AAAA" alt="">`)
}

func TestIndex_EscapesAttributeQuotes(t *testing.T) {
	doc := domain.Document{
		Links: []domain.Link{{Name: "q", URL: `http://a/"onmouseover="x`}},
	}

	out, err := New(Options{}).Index(doc)
	require.NoError(t, err)
	assert.NotContains(t, string(out), `"onmouseover="`)
}
