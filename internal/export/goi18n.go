// Package export writes aggregated modules as go-i18n message bundles
// (active.<locale>.toml), so Go services can consume the same translations
// the app resources define. ICU plural messages map onto go-i18n's plural
// fields; {name} placeholders become {{.name}} template references.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"

	"intlgen/internal/aggregate"
	"intlgen/internal/icu"
)

var placeholderRefRe = regexp.MustCompile(`\{(\w+)\}`)

// pluralFields maps ICU case selectors onto go-i18n message fields. Literal
// selectors cover the common exact matches.
var pluralFields = map[string]string{
	"zero": "zero", "one": "one", "two": "two",
	"few": "few", "many": "many", "other": "other",
	"=0": "zero", "=1": "one", "=2": "two",
}

// WriteBundle writes one active.<locale>.toml per locale of the module into
// outDir. go-i18n has no select construct, so select, selectordinal, and
// compound messages are skipped with a warning rather than exported mangled.
func WriteBundle(m *aggregate.ParsedModule, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", outDir, err)
	}

	for _, loc := range m.Locales() {
		bundle := make(map[string]any)
		for _, key := range m.Keys {
			text, ok := key.Translations[loc]
			if !ok {
				continue
			}
			value, ok := messageValue(key.Description, text)
			if !ok {
				log.Warn().Str("module", m.Name).Str("locale", loc).Str("key", key.Name).
					Msg("Message shape has no go-i18n equivalent, skipping")
				continue
			}
			bundle[key.Name] = value
		}

		data, err := toml.Marshal(bundle)
		if err != nil {
			return fmt.Errorf("marshal bundle for %s: %w", loc, err)
		}
		path := filepath.Join(outDir, "active."+loc+".toml")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		log.Info().Str("path", path).Int("keys", len(bundle)).Msg("Wrote message bundle")
	}
	return nil
}

// messageValue renders one translation as a go-i18n TOML value: a bare
// string for simple messages, a table with plural fields for ICU plurals.
// The second return is false for message shapes go-i18n cannot represent.
func messageValue(description, text string) (any, bool) {
	segs := icu.Segments(text)
	switch {
	case len(segs) == 0:
		converted := templateRefs(text, "")
		if description != "" {
			return map[string]any{"description": description, "other": converted}, true
		}
		return converted, true

	case len(segs) == 1 && segs[0].Type == icu.TypePlural:
		seg := segs[0]
		prefix := text[:seg.Start]
		suffix := text[seg.End:]

		msg := make(map[string]any)
		if description != "" {
			msg["description"] = description
		}
		for _, c := range icu.Cases(seg) {
			field, ok := pluralFields[c.Key]
			if !ok {
				continue
			}
			if _, taken := msg[field]; taken {
				continue
			}
			msg[field] = templateRefs(prefix+c.Body+suffix, seg.Variable)
		}
		return msg, true

	default:
		return nil, false
	}
}

// templateRefs converts {name} placeholders to {{.name}} and, inside plural
// case bodies, the ICU # shorthand to a reference to the control variable.
func templateRefs(s, controlVar string) string {
	if controlVar != "" {
		s = strings.ReplaceAll(s, "#", "{{."+controlVar+"}}")
	}
	return placeholderRefRe.ReplaceAllString(s, "{{.$1}}")
}
