// Package locale validates the locale codes carried in ARB file names and
// @@locale declarations.
package locale

import (
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

// codeRe covers the shapes ARB tooling emits: a language code, optionally a
// script (zh_Hans), optionally a region (en_US, zh_Hans_CN).
var codeRe = regexp.MustCompile(`^[a-z]{2,3}(_[A-Z][a-z]{3})?(_[A-Z]{2})?$`)

// Valid reports whether code is a well-formed locale code that the language
// table can parse.
func Valid(code string) bool {
	if !codeRe.MatchString(code) {
		return false
	}
	_, err := language.Parse(Canonical(code))
	return err == nil
}

// Canonical converts an ARB-style underscore code to its BCP-47 form
// (en_US -> en-US).
func Canonical(code string) string {
	return strings.ReplaceAll(code, "_", "-")
}
