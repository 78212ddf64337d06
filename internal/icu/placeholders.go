package icu

// Placeholders returns the deduplicated names of every placeholder a message
// references, whether as an ICU control variable or as a simple {name}
// interpolation, including interpolations nested inside ICU case bodies.
// Names are returned in textual occurrence order; repeated calls on the same
// input yield the same slice.
func Placeholders(text string) []string {
	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	// Open brace blocks, innermost last. An ICU header records its control
	// variable; case bodies and stray braces push an empty frame so depth
	// stays aligned.
	var frames []string

	i := 0
	for i < len(text) {
		switch text[i] {
		case '{':
			if m := headerStartRe.FindStringSubmatch(text[i:]); m != nil {
				add(m[1])
				frames = append(frames, m[1])
				i += len(m[0])
				continue
			}
			// Directly inside an ICU block, a brace opens a case body:
			// male{He} carries the literal text "He", not a placeholder.
			if n := len(frames); n > 0 && frames[n-1] != "" {
				frames = append(frames, "")
				i++
				continue
			}
			if m := placeholderStartRe.FindStringSubmatch(text[i:]); m != nil {
				// Inside a case body, a bare reference to an enclosing
				// block's control variable repeats what the header already
				// declared. Any other name is a placeholder in its own
				// right, at any nesting depth.
				if !enclosed(frames, m[1]) {
					add(m[1])
				}
				i += len(m[0])
				continue
			}
			frames = append(frames, "")
			i++
		case '}':
			if len(frames) > 0 {
				frames = frames[:len(frames)-1]
			}
			i++
		default:
			i++
		}
	}
	return names
}

func enclosed(frames []string, name string) bool {
	for _, v := range frames {
		if v != "" && v == name {
			return true
		}
	}
	return false
}

// OrderedPlaceholders resolves the argument order for a message. When the
// key's metadata declares placeholders, its declaration order is
// authoritative even if it disagrees with what the message references;
// otherwise the extractor's occurrence order is used.
func OrderedPlaceholders(text string, declared []string) []string {
	if len(declared) > 0 {
		return declared
	}
	return Placeholders(text)
}
