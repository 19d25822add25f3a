package render

import (
	"maps"
	"strings"
)

var defaultSymbols = map[string]string{
	"assembly":         "⚙️",
	"c":                "🅲",
	"c#":               "🎯",
	"c++":              "➕",
	"css":              "🎨",
	"dart":             "🎯",
	"dockerfile":       "🐳",
	"elixir":           "💧",
	"go":               "🐹",
	"haskell":          "λ",
	"html":             "🌐",
	"java":             "☕",
	"javascript":       "🟨",
	"jupyter notebook": "📓",
	"kotlin":           "🟣",
	"lua":              "🌙",
	"php":              "🐘",
	"python":           "🐍",
	"r":                "📊",
	"ruby":             "💎",
	"rust":             "🦀",
	"scala":            "🔺",
	"shell":            "🐚",
	"swift":            "🐦",
	"typescript":       "🔷",
	"vue":              "🟩",
}

// Badges maps language names to display symbols.
// Lookups ignore case; unmapped languages have no symbol.
type Badges struct {
	symbols map[string]string
}

// DefaultBadges returns the built-in language symbol table
func DefaultBadges() Badges {
	return Badges{symbols: defaultSymbols}
}

// With returns a new table with overrides layered on top of b.
// An empty symbol removes the language from the table.
func (b Badges) With(overrides map[string]string) Badges {
	if len(overrides) == 0 {
		return b
	}

	merged := maps.Clone(b.symbols)
	if merged == nil {
		merged = make(map[string]string, len(overrides))
	}

	for lang, symbol := range overrides {
		key := strings.ToLower(strings.TrimSpace(lang))
		if symbol == "" {
			delete(merged, key)
			continue
		}

		merged[key] = symbol
	}

	return Badges{symbols: merged}
}

// Symbol returns the symbol for lang, or "" when it is not mapped
func (b Badges) Symbol(lang string) string {
	return b.symbols[strings.ToLower(lang)]
}

// Len returns the number of mapped languages
func (b Badges) Len() int {
	return len(b.symbols)
}
