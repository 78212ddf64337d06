// Package aggregate merges per-locale ARB documents into a unified,
// order-stable key model for one feature module.
package aggregate

import (
	"context"
	"sort"

	"intlgen/internal/arb"
	"intlgen/internal/icu"
	"intlgen/internal/worker"
)

// Source is one locale resource file handed in by the discovery layer: raw
// content plus the locale it is declared to cover.
type Source struct {
	Path    string
	Locale  string
	Content []byte
}

// LocaleDocument is a parsed document tagged with its locale.
type LocaleDocument struct {
	Path   string
	Locale string
	Doc    *arb.Document
}

// Problem is a non-fatal failure attached to a document or key. Aggregation
// collects problems and keeps going; the caller decides whether any of them
// is build-blocking.
type Problem struct {
	Path   string
	Locale string
	Key    string
	Reason string
}

// TranslationKey is the cross-locale record for one translation key.
// Description and Placeholders are fixed by the first document that defines
// the key; later documents only add translations.
type TranslationKey struct {
	Name         string
	Translations map[string]string
	Description  string
	Placeholders []arb.Placeholder
}

// DeclaredPlaceholders returns the metadata-declared placeholder names in
// declaration order, nil when the key declares none.
func (k *TranslationKey) DeclaredPlaceholders() []string {
	if len(k.Placeholders) == 0 {
		return nil
	}
	names := make([]string, len(k.Placeholders))
	for i, p := range k.Placeholders {
		names[i] = p.Name
	}
	return names
}

// OrderedPlaceholders resolves argument order for one of the key's
// translation strings: metadata declaration order when present, otherwise
// the extractor's occurrence order.
func (k *TranslationKey) OrderedPlaceholders(message string) []string {
	return icu.OrderedPlaceholders(message, k.DeclaredPlaceholders())
}

// ParsedModule is the aggregation result for one feature module.
type ParsedModule struct {
	Name     string
	Path     string
	Keys     []*TranslationKey
	Problems []Problem
}

// Locales returns the sorted set of locales that contributed at least one
// translation.
func (m *ParsedModule) Locales() []string {
	set := make(map[string]bool)
	for _, k := range m.Keys {
		for loc := range k.Translations {
			set[loc] = true
		}
	}
	locales := make([]string, 0, len(set))
	for loc := range set {
		locales = append(locales, loc)
	}
	sort.Strings(locales)
	return locales
}

// ParseSources parses module sources into locale documents, fanning the JSON
// decoding out across the worker pool. Malformed documents contribute zero
// entries and surface as problems; the rest of the module is unaffected.
func ParseSources(ctx context.Context, sources []Source, workers int) ([]LocaleDocument, []Problem) {
	pool := worker.NewPool(workers, func(_ context.Context, src Source) (*arb.Document, error) {
		return arb.Parse(src.Content)
	})

	var docs []LocaleDocument
	var problems []Problem
	for _, task := range pool.Execute(ctx, sources) {
		if task.Err != nil {
			problems = append(problems, Problem{
				Path:   task.Input.Path,
				Locale: task.Input.Locale,
				Reason: task.Err.Error(),
			})
			continue
		}
		docs = append(docs, LocaleDocument{Path: task.Input.Path, Locale: task.Input.Locale, Doc: task.Result})
	}
	return docs, problems
}

// Module merges locale documents into the module's key model. Documents are
// processed in locale order, not argument order, so the "first file defines
// metadata" rule is deterministic across runs. Keys are never removed once
// created; a key absent from a later locale simply has no entry for it.
func Module(name, path string, docs []LocaleDocument) *ParsedModule {
	sorted := make([]LocaleDocument, len(docs))
	copy(sorted, docs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Locale != sorted[j].Locale {
			return sorted[i].Locale < sorted[j].Locale
		}
		return sorted[i].Path < sorted[j].Path
	})

	mod := &ParsedModule{Name: name, Path: path}
	index := make(map[string]*TranslationKey)

	for _, ld := range sorted {
		for _, p := range ld.Doc.Problems() {
			mod.Problems = append(mod.Problems, Problem{
				Path:   ld.Path,
				Locale: ld.Locale,
				Key:    p.Key,
				Reason: p.Reason,
			})
		}

		for _, entry := range ld.Doc.Entries() {
			key, ok := index[entry.Key]
			if !ok {
				key = &TranslationKey{
					Name:         entry.Key,
					Translations: make(map[string]string),
				}
				if meta, ok := ld.Doc.Metadata(entry.Key); ok {
					key.Description = meta.Description
					key.Placeholders = meta.Placeholders
				}
				index[entry.Key] = key
				mod.Keys = append(mod.Keys, key)
			}
			key.Translations[ld.Locale] = entry.Value
		}
	}

	return mod
}

// Validate runs ICU structural validation over every translation of every
// key, appending one problem per failing message.
func (m *ParsedModule) Validate() []Problem {
	var problems []Problem
	for _, key := range m.Keys {
		locales := make([]string, 0, len(key.Translations))
		for loc := range key.Translations {
			locales = append(locales, loc)
		}
		sort.Strings(locales)
		for _, loc := range locales {
			if res := icu.Validate(key.Translations[loc]); !res.Valid {
				problems = append(problems, Problem{
					Locale: loc,
					Key:    key.Name,
					Reason: res.Err,
				})
			}
		}
	}
	return problems
}
