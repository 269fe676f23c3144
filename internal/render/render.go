// Package render turns configuration documents into HTML pages.
// Rendering is pure: the same inputs always produce the same bytes.
package render

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/MrSnakeDoc/homey/internal/domain"
)

//go:embed templates/index.tmpl
var indexTemplateHTML string

//go:embed templates/admin.tmpl
var adminTemplateHTML string

var (
	indexTemplate = template.Must(template.New("index").Parse(indexTemplateHTML))
	adminTemplate = template.Must(template.New("admin").Parse(adminTemplateHTML))
)

// SavedMessage is shown on the admin page after a successful save
const SavedMessage = "Saved."

// Options controls page chrome that does not depend on the document
type Options struct {
	// AdminEnabled shows the "Edit" link on the index page.
	AdminEnabled bool
	// FileName labels the editor text area.
	FileName string
}

// Renderer renders the index and admin pages
type Renderer struct {
	opts Options
}

// New creates a renderer
func New(opts Options) *Renderer {
	if opts.FileName == "" {
		opts.FileName = "config.json"
	}
	return &Renderer{opts: opts}
}

// URL and Icon are operator-supplied and used verbatim: any scheme
// (smb:, ssh:, data:) is allowed. Attribute escaping still applies.
type card struct {
	URL   template.URL
	Icon  template.URL
	Label string
}

type indexPage struct {
	Title    string
	ShowEdit bool
	Cards    []card
}

type adminPage struct {
	Title    string
	FileName string
	Text     string
	Message  string
}

// Index renders the dashboard: the title and every link in document order.
func (r *Renderer) Index(doc domain.Document) ([]byte, error) {
	page := indexPage{
		Title:    doc.Title,
		ShowEdit: r.opts.AdminEnabled,
		Cards:    make([]card, 0, len(doc.Links)),
	}
	for _, link := range doc.Links {
		page.Cards = append(page.Cards, card{
			URL:   template.URL(link.URL),
			Icon:  template.URL(domain.ResolveIcon(link)),
			Label: link.Label(),
		})
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, page); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Admin renders the editor with text in the text area and an optional
// status line (empty message means none).
func (r *Renderer) Admin(text, message string) ([]byte, error) {
	page := adminPage{
		Title:    domain.DefaultTitle,
		FileName: r.opts.FileName,
		Text:     text,
		Message:  message,
	}

	var buf bytes.Buffer
	if err := adminTemplate.Execute(&buf, page); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
