// Package arb reads ARB-style locale resource documents: flat JSON objects
// mapping translation keys to strings, with optional @key metadata siblings
// and @@-prefixed document metadata. Key order and placeholder declaration
// order are preserved, which downstream code generation depends on.
package arb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// PlaceholderInfo carries per-placeholder metadata verbatim. The fields are
// opaque to this package beyond their declaration order.
type PlaceholderInfo struct {
	Type               string            `json:"type,omitempty"`
	Example            string            `json:"example,omitempty"`
	Format             string            `json:"format,omitempty"`
	IsCustomDateFormat bool              `json:"isCustomDateFormat,omitempty"`
	OptionalParameters map[string]string `json:"optionalParameters,omitempty"`
}

// Placeholder pairs a placeholder name with its metadata, in declaration
// order.
type Placeholder struct {
	Name string
	Info PlaceholderInfo
}

// Metadata is the parsed @key sibling of a translation key.
type Metadata struct {
	Description  string
	Placeholders []Placeholder
}

// PlaceholderNames returns the declared placeholder names in declaration
// order.
func (m *Metadata) PlaceholderNames() []string {
	if m == nil || len(m.Placeholders) == 0 {
		return nil
	}
	names := make([]string, len(m.Placeholders))
	for i, p := range m.Placeholders {
		names[i] = p.Name
	}
	return names
}

// Entry is one translation key and its value, in document order.
type Entry struct {
	Key   string
	Value string
}

// EntryError records a schema violation for a single entry. The document
// keeps parsing; the entry is skipped.
type EntryError struct {
	Key    string
	Reason string
}

// Document is a parsed locale resource file.
type Document struct {
	locale   string
	entries  []Entry
	meta     map[string]*Metadata
	problems []EntryError
}

// Parse decodes an ARB document from raw bytes. Key order is preserved by
// streaming tokens instead of unmarshalling into a map. A document that is
// not a JSON object fails as a whole; individual entries with unexpected
// value types are recorded as problems and skipped.
func Parse(data []byte) (*Document, error) {
	doc := &Document{meta: make(map[string]*Metadata)}

	dec := json.NewDecoder(bytes.NewReader(stripBOM(data)))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse arb: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("parse arb: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse arb key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("parse arb: expected string key, got %T", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse arb value for %q: %w", key, err)
		}

		switch {
		case strings.HasPrefix(key, "@@"):
			if key == "@@locale" {
				var s string
				if err := json.Unmarshal(raw, &s); err != nil {
					doc.problems = append(doc.problems, EntryError{Key: key, Reason: "@@locale is not a string"})
					continue
				}
				doc.locale = s
			}
			// Other @@-keys are document metadata with no bearing here.

		case strings.HasPrefix(key, "@"):
			meta, err := parseMetadata(raw)
			if err != nil {
				doc.problems = append(doc.problems, EntryError{Key: key, Reason: err.Error()})
				continue
			}
			doc.meta[strings.TrimPrefix(key, "@")] = meta

		default:
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				doc.problems = append(doc.problems, EntryError{Key: key, Reason: "translation value is not a string"})
				continue
			}
			doc.entries = append(doc.entries, Entry{Key: key, Value: s})
		}
	}

	// Consume the closing brace so truncated documents fail instead of
	// passing silently: More reports false at EOF without an error.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parse arb: %w", err)
	}

	return doc, nil
}

// parseMetadata decodes a @key metadata object, preserving the declaration
// order of the placeholders mapping.
func parseMetadata(raw json.RawMessage) (*Metadata, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("metadata is not an object")
	}

	meta := &Metadata{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("metadata key: %w", err)
		}
		key, _ := keyTok.(string)

		var field json.RawMessage
		if err := dec.Decode(&field); err != nil {
			return nil, fmt.Errorf("metadata value for %q: %w", key, err)
		}

		switch key {
		case "description":
			var s string
			if err := json.Unmarshal(field, &s); err != nil {
				return nil, fmt.Errorf("description is not a string")
			}
			meta.Description = s
		case "placeholders":
			phs, err := parsePlaceholders(field)
			if err != nil {
				return nil, err
			}
			meta.Placeholders = phs
		}
	}
	return meta, nil
}

func parsePlaceholders(raw json.RawMessage) ([]Placeholder, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("placeholders: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("placeholders is not an object")
	}

	var phs []Placeholder
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("placeholder name: %w", err)
		}
		name, _ := keyTok.(string)

		var info PlaceholderInfo
		if err := dec.Decode(&info); err != nil {
			return nil, fmt.Errorf("placeholder %q has unexpected shape", name)
		}
		phs = append(phs, Placeholder{Name: name, Info: info})
	}
	return phs, nil
}

// Locale returns the @@locale value, empty when the document does not
// declare one.
func (d *Document) Locale() string { return d.locale }

// Entries returns the translation entries in document order. Metadata keys
// are never entries.
func (d *Document) Entries() []Entry { return d.entries }

// Metadata returns the parsed @key sibling for a translation key.
func (d *Document) Metadata(key string) (*Metadata, bool) {
	m, ok := d.meta[key]
	return m, ok
}

// Problems returns the per-entry schema violations encountered while
// parsing.
func (d *Document) Problems() []EntryError { return d.problems }

func stripBOM(b []byte) []byte {
	bom := []byte{0xEF, 0xBB, 0xBF}
	if len(b) >= 3 && bytes.Equal(b[:3], bom) {
		return b[3:]
	}
	return b
}
