package corpus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typemaster/internal/generator"
)

func TestQuotesNeverRepeatsConsecutively(t *testing.T) {
	q := NewQuotes(generator.NewWithSeed(7), []string{"a", "b", "c"})
	prev := q.Next()
	for i := 0; i < 200; i++ {
		cur := q.Next()
		require.NotEqual(t, prev, cur, "draw %d", i)
		prev = cur
	}
}

func TestQuotesCoversAllTexts(t *testing.T) {
	q := NewQuotes(generator.NewWithSeed(9), SampleTexts)
	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		seen[q.Next()] = true
	}
	assert.Len(t, seen, len(SampleTexts))
}

func TestQuotesSmallCorpora(t *testing.T) {
	assert.Equal(t, "", NewQuotes(generator.NewWithSeed(1), nil).Next())
	single := NewQuotes(generator.NewWithSeed(1), []string{"only"})
	assert.Equal(t, "only", single.Next())
	assert.Equal(t, "only", single.Next())
}

func TestWordsUsesWeakFunc(t *testing.T) {
	calls := 0
	w := NewWords(generator.NewWithSeed(3), []string{"zz", "aa"}, generator.Options{Count: 5, WeakFactor: 2},
		func() map[rune]struct{} {
			calls++
			return map[rune]struct{}{'z': {}}
		})
	text := w.Next()
	assert.Len(t, strings.Fields(text), 5)
	assert.Equal(t, 1, calls)
}

func TestFixed(t *testing.T) {
	assert.Equal(t, "asdf", Fixed("asdf").Next())
}

func TestLessonsUnlockInOrder(t *testing.T) {
	ls := Lessons()
	require.Len(t, ls, 8)
	assert.True(t, Unlocked(1, nil))
	assert.False(t, Unlocked(2, nil))
	assert.True(t, Unlocked(2, map[int]bool{1: true}))
	assert.False(t, Unlocked(3, map[int]bool{1: true}))

	l, ok := LessonByID(6)
	require.True(t, ok)
	assert.Equal(t, Intermediate, l.Level)
	_, ok = LessonByID(99)
	assert.False(t, ok)
}
