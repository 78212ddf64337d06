// Package codegen turns aggregated modules into Dart localization classes
// backed by package:intl. One class per module; getters for plain keys,
// methods with ordered placeholder arguments for parameterized ones.
package codegen

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"text/template"

	"intlgen/internal/aggregate"
	"intlgen/internal/icu"
)

var fileTmpl = template.Must(template.New("dart").Parse(`// Generated by intlgen. Do not edit by hand.
import 'package:intl/intl.dart';

class {{.Class}}Localizations {
{{- range .Members}}
{{.}}
{{- end}}
}
`))

// pluralCaseOrder fixes the argument order of Intl.plural named parameters.
var pluralCaseOrder = []string{"zero", "one", "two", "few", "many", "other"}

// exactSelectors maps ICU literal selectors onto the plural categories the
// intl runtime understands.
var exactSelectors = map[string]string{"=0": "zero", "=1": "one", "=2": "two"}

var simplePlaceholderRe = regexp.MustCompile(`\{(\w+)\}`)

// Generator renders Dart localization classes. TemplateLocale selects the
// translation string each method body is built from.
type Generator struct {
	TemplateLocale string
}

// FileName returns the output file name for a module.
func (g *Generator) FileName(m *aggregate.ParsedModule) string {
	return m.Name + "_localizations.dart"
}

// Module renders the localization class for one module.
func (g *Generator) Module(m *aggregate.ParsedModule) ([]byte, error) {
	var members []string
	for _, key := range m.Keys {
		member, err := g.member(key)
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", key.Name, err)
		}
		members = append(members, member)
	}

	var buf bytes.Buffer
	data := struct {
		Class   string
		Members []string
	}{Class: className(m.Name), Members: members}
	if err := fileTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render module %s: %w", m.Name, err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) member(key *aggregate.TranslationKey) (string, error) {
	message, ok := key.Translations[g.TemplateLocale]
	if !ok {
		// Fall back to the lexically first locale that has the key.
		locales := make([]string, 0, len(key.Translations))
		for loc := range key.Translations {
			locales = append(locales, loc)
		}
		if len(locales) == 0 {
			return "", fmt.Errorf("no translations")
		}
		sort.Strings(locales)
		message = key.Translations[locales[0]]
	}

	params := key.OrderedPlaceholders(message)

	var b strings.Builder
	if key.Description != "" {
		fmt.Fprintf(&b, "  /// %s\n", key.Description)
	}

	if len(params) == 0 {
		fmt.Fprintf(&b, "  static String get %s => Intl.message(%s, name: '%s');",
			key.Name, dartString(message), key.Name)
		return b.String(), nil
	}

	fmt.Fprintf(&b, "  static String %s(%s) =>\n      ", key.Name, paramList(key, params))

	segs := icu.Segments(message)
	switch {
	case len(segs) == 1 && segs[0].Type == icu.TypePlural:
		b.WriteString(pluralExpr(message, segs[0], key.Name, params))
	case len(segs) == 1 && segs[0].Type == icu.TypeSelect:
		b.WriteString(selectExpr(message, segs[0]))
	default:
		// Plain interpolation, selectordinal, and compound messages all
		// render through Intl.message with Dart string interpolation.
		fmt.Fprintf(&b, "Intl.message(%s, name: '%s', args: [%s])",
			dartString(message), key.Name, strings.Join(params, ", "))
	}
	b.WriteString(";")
	return b.String(), nil
}

// pluralExpr renders an Intl.plural call. Text around the ICU expression is
// folded into every case body.
func pluralExpr(message string, seg icu.Segment, name string, params []string) string {
	prefix := message[:seg.Start]
	suffix := message[seg.End:]

	byCategory := make(map[string]string)
	for _, c := range icu.Cases(seg) {
		category := c.Key
		if mapped, ok := exactSelectors[category]; ok {
			if _, taken := byCategory[mapped]; taken {
				continue
			}
			category = mapped
		}
		byCategory[category] = c.Body
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Intl.plural(%s", seg.Variable)
	for _, category := range pluralCaseOrder {
		body, ok := byCategory[category]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, ", %s: %s", category, dartString(prefix+body+suffix))
	}
	fmt.Fprintf(&b, ", name: '%s', args: [%s])", name, strings.Join(params, ", "))
	return b.String()
}

func selectExpr(message string, seg icu.Segment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Intl.select(%s, {", seg.Variable)
	for i, c := range icu.Cases(seg) {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "'%s': %s", c.Key, dartString(c.Body))
	}
	b.WriteString("})")
	return b.String()
}

// paramList renders typed Dart parameters, using declared placeholder types
// where the metadata provides them.
func paramList(key *aggregate.TranslationKey, params []string) string {
	types := make(map[string]string)
	for _, p := range key.Placeholders {
		types[p.Name] = dartType(p.Info.Type)
	}
	parts := make([]string, len(params))
	for i, name := range params {
		t, ok := types[name]
		if !ok {
			t = "Object"
		}
		parts[i] = t + " " + name
	}
	return strings.Join(parts, ", ")
}

func dartType(arbType string) string {
	switch arbType {
	case "int":
		return "int"
	case "num", "double":
		return "num"
	case "String":
		return "String"
	case "DateTime":
		return "DateTime"
	default:
		return "Object"
	}
}

// dartString renders message text as a single-quoted Dart literal with
// {name} placeholders rewritten to $name interpolation.
func dartString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	s = strings.ReplaceAll(s, `$`, `\$`)
	s = simplePlaceholderRe.ReplaceAllString(s, `$$$1`)
	return "'" + s + "'"
}

func className(module string) string {
	parts := strings.Split(module, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "")
}
