package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// object holds one JSON object by exact key. encoding/json matches struct
// fields case-insensitively, so fields are looked up here instead.
type object map[string]json.RawMessage

// Parse decodes and validates a configuration document.
// Keys are case-sensitive. Unknown keys are ignored; trailing content after
// the JSON value is rejected.
func Parse(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	var top object
	if err := dec.Decode(&top); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, errors.New("empty document")
		}
		return Document{}, err
	}
	if top == nil {
		return Document{}, errors.New("document must be a JSON object")
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return Document{}, errors.New("unexpected trailing data after document")
	}

	return decodeDocument(top)
}

func decodeDocument(top object) (Document, error) {
	doc := Document{Title: DefaultTitle}

	title, err := top.optionalString("title")
	if err != nil {
		return Document{}, err
	}
	if title != nil {
		doc.Title = *title
	}

	raw, ok := top["links"]
	if !ok || isNull(raw) {
		return Document{}, errors.New(`missing required field "links"`)
	}
	var items []object
	if err := json.Unmarshal(raw, &items); err != nil {
		return Document{}, fmt.Errorf(`field "links": %w`, err)
	}

	doc.Links = make([]Link, 0, len(items))
	for i, item := range items {
		link, err := decodeLink(item)
		if err != nil {
			return Document{}, fmt.Errorf("links[%d]: %w", i, err)
		}
		doc.Links = append(doc.Links, link)
	}

	return doc, nil
}

func decodeLink(item object) (Link, error) {
	name, err := item.requiredString("name")
	if err != nil {
		return Link{}, err
	}
	url, err := item.requiredString("url")
	if err != nil {
		return Link{}, err
	}
	altName, err := item.optionalString("altName")
	if err != nil {
		return Link{}, err
	}
	icon, err := item.optionalString("icon")
	if err != nil {
		return Link{}, err
	}

	return Link{Name: name, URL: url, AltName: altName, Icon: icon}, nil
}

func (o object) requiredString(key string) (string, error) {
	v, err := o.optionalString(key)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", fmt.Errorf("missing required field %q", key)
	}
	return *v, nil
}

// optionalString returns nil for an absent or null key.
func (o object) optionalString(key string) (*string, error) {
	raw, ok := o[key]
	if !ok || isNull(raw) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("field %q: %w", key, err)
	}
	return &s, nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// Canonical encodes the document in its on-disk form: two-space indentation,
// struct key order, no HTML escaping and a trailing newline.
func Canonical(doc Document) ([]byte, error) {
	out := doc
	if out.Links == nil {
		out.Links = []Link{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	// Encode terminates the value with a newline.
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
