package icu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasICU(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"plain string", "Hello world", false},
		{"simple interpolation only", "Hello {name}", false},
		{"plural header", "{count, plural, other{x}}", true},
		{"select header", "{gender, select, other{x}}", true},
		{"selectordinal header", "{rank, selectordinal, other{x}}", true},
		{"header without surrounding braces", "no body {count, plural,", true},
		{"comma without type keyword", "{count, something, other{x}}", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasICU(tt.text))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Type
	}{
		{"no icu", "Hello {name}", TypeNone},
		{"plural", "{count, plural, other{x}}", TypePlural},
		{"select", "{g, select, other{x}}", TypeSelect},
		{"selectordinal keyword not cut short", "{rank, selectordinal, other{x}}", TypeSelectOrdinal},
		{
			// A compound message classifies as its first segment's type.
			"first segment wins",
			"{g, select, other{x}} and {count, plural, other{y}}",
			TypeSelect,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}
