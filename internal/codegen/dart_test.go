package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intlgen/internal/aggregate"
	"intlgen/internal/arb"
)

func TestGeneratorModule(t *testing.T) {
	mod := &aggregate.ParsedModule{
		Name: "settings",
		Keys: []*aggregate.TranslationKey{
			{
				Name:         "title",
				Translations: map[string]string{"en": "Settings"},
			},
			{
				Name:         "greeting",
				Description:  "Home screen greeting",
				Translations: map[string]string{"en": "Hello {name}"},
				Placeholders: []arb.Placeholder{{Name: "name", Info: arb.PlaceholderInfo{Type: "String"}}},
			},
			{
				Name:         "itemCount",
				Translations: map[string]string{"en": "You have {count, plural, =0{nothing} other{{count} items}}"},
				Placeholders: []arb.Placeholder{{Name: "count", Info: arb.PlaceholderInfo{Type: "int"}}},
			},
			{
				Name:         "pronoun",
				Translations: map[string]string{"en": "{sex, select, male{He} other{They}}"},
			},
		},
	}

	gen := &Generator{TemplateLocale: "en"}
	assert.Equal(t, "settings_localizations.dart", gen.FileName(mod))

	src, err := gen.Module(mod)
	require.NoError(t, err)
	out := string(src)

	assert.Contains(t, out, "class SettingsLocalizations {")

	// Plain key becomes a getter.
	assert.Contains(t, out, "static String get title => Intl.message('Settings', name: 'title');")

	// Parameterized key becomes a typed method with the description as a
	// doc comment.
	assert.Contains(t, out, "/// Home screen greeting")
	assert.Contains(t, out, "static String greeting(String name)")
	assert.Contains(t, out, "Intl.message('Hello $name', name: 'greeting', args: [name])")

	// Plural key folds surrounding text into every case and maps =0 to zero.
	assert.Contains(t, out, "static String itemCount(int count)")
	assert.Contains(t, out, "Intl.plural(count")
	assert.Contains(t, out, "zero: 'You have nothing'")
	assert.Contains(t, out, "other: 'You have $count items'")

	// Select key renders a case map; undeclared placeholders default to
	// Object.
	assert.Contains(t, out, "static String pronoun(Object sex)")
	assert.Contains(t, out, "Intl.select(sex, {'male': 'He', 'other': 'They'})")
}

func TestGeneratorFallbackLocale(t *testing.T) {
	mod := &aggregate.ParsedModule{
		Name: "app",
		Keys: []*aggregate.TranslationKey{
			{Name: "onlyFr", Translations: map[string]string{"fr": "Bonjour"}},
		},
	}

	src, err := (&Generator{TemplateLocale: "en"}).Module(mod)
	require.NoError(t, err)
	assert.Contains(t, string(src), "'Bonjour'")
}

func TestDartString(t *testing.T) {
	assert.Equal(t, `'Hello $name'`, dartString("Hello {name}"))
	assert.Equal(t, `'it\'s \$5'`, dartString("it's $5"))
	assert.Equal(t, `'a\\b'`, dartString(`a\b`))
}

func TestClassName(t *testing.T) {
	assert.Equal(t, "Settings", className("settings"))
	assert.Equal(t, "UserProfile", className("user_profile"))
}
