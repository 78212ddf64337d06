package icu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegments(t *testing.T) {
	t.Run("no segments in plain text", func(t *testing.T) {
		assert.Empty(t, Segments("Hello {name}"))
	})

	t.Run("single expression with nested placeholder", func(t *testing.T) {
		text := "You have {count, plural, =0{nothing} other{{count} items}} here"
		segs := Segments(text)
		require.Len(t, segs, 1)

		seg := segs[0]
		assert.Equal(t, "count", seg.Variable)
		assert.Equal(t, TypePlural, seg.Type)
		assert.Equal(t, strings.Index(text, "{count,"), seg.Start)
		assert.Equal(t, seg.Raw, text[seg.Start:seg.End])
		assert.Equal(t, "{count, plural, =0{nothing} other{{count} items}}", seg.Raw)
	})

	t.Run("compound message yields one segment per expression", func(t *testing.T) {
		text := "{gender, select, male{He} other{They}} has {count, plural, one{1 item} other{{count} items}}"
		segs := Segments(text)
		require.Len(t, segs, 2)

		assert.Equal(t, "gender", segs[0].Variable)
		assert.Equal(t, TypeSelect, segs[0].Type)
		assert.Equal(t, "count", segs[1].Variable)
		assert.Equal(t, TypePlural, segs[1].Type)

		// Segments never overlap and reproduce their slice of the input.
		assert.LessOrEqual(t, segs[0].End, segs[1].Start)
		for _, seg := range segs {
			assert.Equal(t, seg.Raw, text[seg.Start:seg.End])
		}
	})
}

func TestIsCompound(t *testing.T) {
	assert.False(t, IsCompound("Hello {name}"))
	assert.False(t, IsCompound("{count, plural, other{{count} items}}"))
	assert.True(t, IsCompound("{g, select, other{x}} {count, plural, other{y}}"))
}

func TestCases(t *testing.T) {
	text := "{count, plural, =0{none} one{1 item} other{{count} items}}"
	segs := Segments(text)
	require.Len(t, segs, 1)

	cases := Cases(segs[0])
	require.Len(t, cases, 3)

	assert.Equal(t, Case{Key: "=0", Body: "none"}, cases[0])
	assert.Equal(t, Case{Key: "one", Body: "1 item"}, cases[1])
	assert.Equal(t, Case{Key: "other", Body: "{count} items"}, cases[2])
}
