package domain

// DefaultTitle is used when the configuration does not declare a title.
const DefaultTitle = "Homey"

// Document is the validated dashboard configuration.
//
// A Document is treated as a value: the store hands out deep copies and
// replaces it wholesale, it is never mutated in place once published.
type Document struct {
	// Title is always resolved: DefaultTitle when the source omitted it.
	Title string `json:"title"`

	// Links are kept in display order.
	Links []Link `json:"links"`
}

// Link is one dashboard entry.
type Link struct {
	// Name identifies the link and drives the derived icon.
	Name string `json:"name"`

	// URL is the link target. It is an opaque string and never validated.
	URL string `json:"url"`

	// AltName overrides the displayed label when set.
	AltName *string `json:"altName,omitempty"`

	// Icon overrides the derived icon source when set.
	Icon *string `json:"icon,omitempty"`
}

// Label returns the text displayed for the link: AltName when present, Name otherwise.
func (l Link) Label() string {
	if l.AltName != nil {
		return *l.AltName
	}
	return l.Name
}

// ID returns the identifier used for usage tracking.
// It is the same slug the icon resolver derives from Name.
func (l Link) ID() string {
	return iconSlug(l.Name)
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := Document{
		Title: d.Title,
		Links: make([]Link, len(d.Links)),
	}
	for i, link := range d.Links {
		out.Links[i] = link.clone()
	}
	return out
}

func (l Link) clone() Link {
	out := Link{Name: l.Name, URL: l.URL}
	if l.AltName != nil {
		v := *l.AltName
		out.AltName = &v
	}
	if l.Icon != nil {
		v := *l.Icon
		out.Icon = &v
	}
	return out
}

// StringPtr is a small helper for building optional fields.
func StringPtr(s string) *string { return &s }
