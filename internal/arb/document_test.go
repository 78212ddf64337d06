package arb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := []byte(`{
		"@@locale": "en",
		"@@last_modified": "2024-01-01T00:00:00Z",
		"title": "Settings",
		"@title": {"description": "Page title"},
		"greeting": "Hello {name}",
		"@greeting": {
			"description": "Shown on the home screen",
			"placeholders": {
				"name": {"type": "String", "example": "Alice"}
			}
		},
		"itemCount": "{count, plural, =0{none} other{{count} items}}"
	}`)

	doc, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "en", doc.Locale())
	assert.Empty(t, doc.Problems())

	entries := doc.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, Entry{Key: "title", Value: "Settings"}, entries[0])
	assert.Equal(t, Entry{Key: "greeting", Value: "Hello {name}"}, entries[1])
	assert.Equal(t, "itemCount", entries[2].Key)

	meta, ok := doc.Metadata("greeting")
	require.True(t, ok)
	assert.Equal(t, "Shown on the home screen", meta.Description)
	require.Len(t, meta.Placeholders, 1)
	assert.Equal(t, "name", meta.Placeholders[0].Name)
	assert.Equal(t, "String", meta.Placeholders[0].Info.Type)
	assert.Equal(t, "Alice", meta.Placeholders[0].Info.Example)

	_, ok = doc.Metadata("itemCount")
	assert.False(t, ok)
}

func TestParsePlaceholderOrder(t *testing.T) {
	// Declaration order must survive even when it disagrees with both
	// alphabetical and occurrence order.
	data := []byte(`{
		"msg": "{a} and {b}",
		"@msg": {
			"placeholders": {
				"b": {},
				"a": {}
			}
		}
	}`)

	doc, err := Parse(data)
	require.NoError(t, err)

	meta, ok := doc.Metadata("msg")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, meta.PlaceholderNames())
}

func TestParseSchemaViolations(t *testing.T) {
	data := []byte(`{
		"good": "fine",
		"bad": 42,
		"alsoBad": ["x"],
		"@broken": "not an object",
		"stillGood": "yes"
	}`)

	doc, err := Parse(data)
	require.NoError(t, err)

	// Violating entries are skipped; the rest of the document parses.
	entries := doc.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "good", entries[0].Key)
	assert.Equal(t, "stillGood", entries[1].Key)

	problems := doc.Problems()
	require.Len(t, problems, 3)
	assert.Equal(t, EntryError{Key: "bad", Reason: "translation value is not a string"}, problems[0])
	assert.Equal(t, EntryError{Key: "alsoBad", Reason: "translation value is not a string"}, problems[1])
	assert.Equal(t, "@broken", problems[2].Key)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte(`{"key": "value"`))
	assert.Error(t, err)

	_, err = Parse([]byte(`["not", "an", "object"]`))
	assert.Error(t, err)
}

func TestParseStripsBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"k": "v"}`)...)
	doc, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, doc.Entries(), 1)
	assert.Equal(t, "v", doc.Entries()[0].Value)
}
