package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateString_KeepsShortStrings(t *testing.T) {
	assert.Equal(t, "hello", TruncateString("hello", 10))
	assert.Equal(t, "hello", TruncateString("hello", 5))
}

func TestTruncateString_CutsOnRuneBoundary(t *testing.T) {
	// "héllo wörld" holds two-byte runes; a byte-indexed cut inside one
	// would produce invalid UTF-8.
	s := "héllo wörld"
	for maxLen := 0; maxLen < len(s); maxLen++ {
		got := TruncateString(s, maxLen)
		assert.True(t, utf8.ValidString(got), "maxLen=%d got=%q", maxLen, got)
		assert.LessOrEqual(t, len(got), maxLen)
		assert.True(t, strings.HasPrefix(s, got))
	}

	// Four-byte emoji straddling the limit is dropped whole.
	assert.Equal(t, "hi ", TruncateString("hi \U0001F600", 5))
}

func TestSanitizeSearchQuery_EscapesWildcards(t *testing.T) {
	assert.Equal(t, "%50\\%%", SanitizeSearchQuery("50%"))
	assert.Equal(t, "%a\\_b%", SanitizeSearchQuery(" a_b "))
	assert.Equal(t, "%back\\\\slash%", SanitizeSearchQuery(`back\slash`))
}
