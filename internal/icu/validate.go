package icu

import "strings"

// Result is the outcome of a structural validation. Validation failures are
// values, not errors, so callers can batch-report every problem across a
// module before failing a build.
type Result struct {
	Valid bool
	Err   string
}

// Validate checks a message for brace balance and, for plural and
// selectordinal messages, the mandatory other case. Plain strings without ICU
// syntax always validate. select messages are not required to declare other:
// a finite enumerated set may be exhaustive.
func Validate(text string) Result {
	if !HasICU(text) {
		return Result{Valid: true}
	}

	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return Result{Err: "unmatched closing brace"}
			}
		}
	}
	if depth != 0 {
		return Result{Err: "unmatched opening brace"}
	}

	switch Classify(text) {
	case TypePlural:
		if !strings.Contains(text, "other{") {
			return Result{Err: "plural message missing required 'other' case"}
		}
	case TypeSelectOrdinal:
		if !strings.Contains(text, "other{") {
			return Result{Err: "selectordinal message missing required 'other' case"}
		}
	}
	return Result{Valid: true}
}
