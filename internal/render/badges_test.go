package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBadges_Symbol(t *testing.T) {
	b := DefaultBadges()

	assert.Equal(t, "🐹", b.Symbol("Go"))
	assert.Equal(t, "🐹", b.Symbol("GO"))
	assert.Equal(t, "📓", b.Symbol("Jupyter Notebook"))
	assert.Equal(t, "", b.Symbol("Brainfuck"))
	assert.Equal(t, "", b.Symbol("None"))
}

func TestBadges_WithDoesNotMutateDefaults(t *testing.T) {
	base := DefaultBadges()
	before := base.Len()

	custom := base.With(map[string]string{
		"Zig":  "⚡",
		"Go":   "🦫",
		"Ruby": "",
	})

	assert.Equal(t, "⚡", custom.Symbol("zig"))
	assert.Equal(t, "🦫", custom.Symbol("Go"))
	assert.Equal(t, "", custom.Symbol("Ruby"))

	assert.Equal(t, before, base.Len())
	assert.Equal(t, "🐹", base.Symbol("Go"))
	assert.Equal(t, "💎", DefaultBadges().Symbol("Ruby"))
	assert.Equal(t, "", DefaultBadges().Symbol("Zig"))
}

func TestBadges_WithEmptyOverrides(t *testing.T) {
	b := DefaultBadges()
	assert.Equal(t, b.Len(), b.With(nil).Len())
}

func TestBadges_ZeroValue(t *testing.T) {
	var b Badges

	assert.Equal(t, "", b.Symbol("Go"))
	assert.Equal(t, "✨", b.With(map[string]string{"Go": "✨"}).Symbol("go"))
}
