// Package corpus supplies reference texts for typing sessions.
package corpus

import (
	"strings"

	"github.com/verte-zerg/typemaster/internal/generator"
)

// SampleTexts are the built-in passages for the typing test.
var SampleTexts = []string{
	"The quick brown fox jumps over the lazy dog. This sentence contains every letter of the alphabet and is commonly used for typing practice.",
	"In a hole in the ground there lived a hobbit. Not a nasty, dirty, wet hole filled with the ends of worms and an oozy smell, nor yet a dry, bare, sandy hole.",
	"Technology has revolutionized the way we communicate, work, and live. From smartphones to artificial intelligence, innovation continues to shape our future.",
	"Practice makes perfect when it comes to typing. Regular exercise and proper finger placement will significantly improve your speed and accuracy over time.",
	"Pack my box with five dozen liquor jugs. How vexingly quick daft zebras jump! The five boxing wizards jump quickly.",
	"A journey of a thousand miles begins with a single step. Keep your eyes on the screen and let your fingers find their way home.",
}

// Quotes draws passages at random, never repeating the previous one when
// there is a choice.
type Quotes struct {
	gen   *generator.Generator
	texts []string
	last  int
}

// NewQuotes returns a Quotes source over texts. A nil gen is seeded from
// the clock.
func NewQuotes(gen *generator.Generator, texts []string) *Quotes {
	if gen == nil {
		gen = generator.New()
	}
	return &Quotes{gen: gen, texts: texts, last: -1}
}

// Next implements session.Source.
func (q *Quotes) Next() string {
	switch len(q.texts) {
	case 0:
		return ""
	case 1:
		return q.texts[0]
	}
	var idx int
	if q.last < 0 {
		idx = q.gen.Intn(len(q.texts))
	} else if idx = q.gen.Intn(len(q.texts) - 1); idx >= q.last {
		idx++
	}
	q.last = idx
	return q.texts[idx]
}

// WeakFunc returns the runes to favor for the next text.
type WeakFunc func() map[rune]struct{}

// Words generates texts from a word list.
type Words struct {
	gen   *generator.Generator
	words []string
	opts  generator.Options
	weak  WeakFunc
}

// NewWords returns a generated-text source. weak may be nil.
func NewWords(gen *generator.Generator, words []string, opts generator.Options, weak WeakFunc) *Words {
	if gen == nil {
		gen = generator.New()
	}
	return &Words{gen: gen, words: words, opts: opts, weak: weak}
}

// Next implements session.Source.
func (w *Words) Next() string {
	opts := w.opts
	if w.weak != nil {
		opts.Weak = w.weak()
	}
	return strings.Join(w.gen.Generate(w.words, opts), " ")
}

// Fixed always returns the same text.
type Fixed string

// Next implements session.Source.
func (f Fixed) Next() string {
	return string(f)
}
