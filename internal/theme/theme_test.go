package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplySwitchesPaletteInPlace(t *testing.T) {
	s := New(true)
	ref := s
	assert.Equal(t, DarkPalette, s.Palette)

	s.Apply(false)
	assert.Same(t, ref, s)
	assert.False(t, ref.Dark)
	assert.Equal(t, LightPalette, ref.Palette)
}

func TestFitLines(t *testing.T) {
	out := FitLines("ab\ncd\nef", 4, 2)
	assert.Equal(t, "ab  \ncd  ", out)

	out = FitLines("x", 2, 3)
	assert.Len(t, strings.Split(out, "\n"), 3)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab...", Truncate("abcdefgh", 5))
	assert.Equal(t, "ab", Truncate("abcdefgh", 2))
}
