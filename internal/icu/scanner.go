// Package icu analyzes ICU MessageFormat structure in translation strings:
// plural/select/selectordinal headers, nested placeholders, compound messages.
// It does not evaluate messages or enforce the full ICU grammar; it extracts
// placeholder names, segments messages into brace-balanced ICU expressions,
// and checks the structural rules code generation depends on.
package icu

// SkipBlock returns the index immediately after the closing brace that
// matches the opening brace at start. When the string ends before the block
// closes, it returns len(text): unbalanced input is a data-quality condition
// reported by Validate, not a scanner fault.
func SkipBlock(text string, start int) int {
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(text)
}

// InsideBlock reports whether pos sits inside a top-level brace block whose
// opening brace started an ICU header. It replays the scan from the beginning
// of the string, tracking depth and whether the block opened at depth 1 was
// recognized as an ICU header.
func InsideBlock(text string, pos int) bool {
	depth := 0
	inICU := false
	for i := 0; i < len(text) && i < pos; i++ {
		switch text[i] {
		case '{':
			if depth == 0 {
				inICU = headerAt(text, i)
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
			if depth == 0 {
				inICU = false
			}
		}
	}
	return depth > 0 && inICU
}
