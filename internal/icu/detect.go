package icu

import "regexp"

// Type identifies the kind of ICU expression a message opens with.
type Type string

const (
	// TypeNone marks a message with no ICU header.
	TypeNone Type = ""
	// TypePlural selects a case by cardinal number.
	TypePlural Type = "plural"
	// TypeSelect selects a case by enumerated value.
	TypeSelect Type = "select"
	// TypeSelectOrdinal selects a case by ordinal number.
	TypeSelectOrdinal Type = "selectordinal"
)

// headerRe matches an ICU header: an opening brace, the control variable,
// a comma, and one of the three supported type keywords followed by a comma.
// selectordinal must precede select in the alternation so the longer keyword
// is not cut short.
var headerRe = regexp.MustCompile(`\{(\w+)\s*,\s*(plural|selectordinal|select)\s*,`)

// headerStartRe is headerRe anchored to the start of its input, used when the
// scanner needs to test a header at an exact brace position.
var headerStartRe = regexp.MustCompile(`^\{(\w+)\s*,\s*(plural|selectordinal|select)\s*,`)

// placeholderStartRe matches a simple interpolation placeholder {name} at the
// start of its input. Word characters only: ICU literal selectors such as =0
// can never match.
var placeholderStartRe = regexp.MustCompile(`^\{(\w+)\}`)

// HasICU reports whether the message contains at least one ICU header.
func HasICU(text string) bool {
	return headerRe.MatchString(text)
}

// Classify returns the type of the first ICU header in left-to-right order.
// Later segments of a compound message do not affect the result.
func Classify(text string) Type {
	m := headerRe.FindStringSubmatch(text)
	if m == nil {
		return TypeNone
	}
	return Type(m[2])
}

// headerAt reports whether an ICU header begins at the brace at position i.
func headerAt(text string, i int) bool {
	return headerStartRe.MatchString(text[i:])
}
