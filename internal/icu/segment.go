package icu

import "strings"

// Segment is one top-level ICU expression within a message. Start and End are
// half-open offsets into the original message such that Raw == text[Start:End]
// and the substring is brace-balanced.
type Segment struct {
	Variable string
	Type     Type
	Start    int
	End      int
	Raw      string
}

// Segments returns every top-level ICU expression in left-to-right discovery
// order. The scan resumes after each resolved block, so segments never
// overlap and headers nested inside case bodies are not reported.
func Segments(text string) []Segment {
	var segs []Segment
	i := 0
	for i < len(text) {
		loc := headerRe.FindStringSubmatchIndex(text[i:])
		if loc == nil {
			break
		}
		start := i + loc[0]
		end := SkipBlock(text, start)
		segs = append(segs, Segment{
			Variable: text[i+loc[2] : i+loc[3]],
			Type:     Type(text[i+loc[4] : i+loc[5]]),
			Start:    start,
			End:      end,
			Raw:      text[start:end],
		})
		i = end
	}
	return segs
}

// IsCompound reports whether a message contains two or more independent
// top-level ICU expressions. A single expression with nested placeholders is
// not compound.
func IsCompound(text string) bool {
	return len(Segments(text)) > 1
}

// Case is one selector and its body inside an ICU expression, e.g.
// one{...} or =0{...}.
type Case struct {
	Key  string
	Body string
}

// Cases splits the body of an ICU segment into its selector/body pairs.
// The segment's header is skipped; bodies keep nested braces intact.
func Cases(seg Segment) []Case {
	m := headerStartRe.FindStringSubmatch(seg.Raw)
	if m == nil {
		return nil
	}
	// Body runs from the end of the header to the brace closing the segment.
	body := seg.Raw[len(m[0]):]
	if n := strings.LastIndexByte(body, '}'); n >= 0 {
		body = body[:n]
	}

	var cases []Case
	i := 0
	for i < len(body) {
		for i < len(body) && (body[i] == ' ' || body[i] == '\t' || body[i] == '\n' || body[i] == '\r') {
			i++
		}
		start := i
		for i < len(body) && body[i] != '{' {
			i++
		}
		if i >= len(body) {
			break
		}
		key := strings.TrimSpace(body[start:i])
		end := SkipBlock(body, i)
		inner := body[i:end]
		inner = strings.TrimPrefix(inner, "{")
		inner = strings.TrimSuffix(inner, "}")
		if key != "" {
			cases = append(cases, Case{Key: key, Body: inner})
		}
		i = end
	}
	return cases
}
