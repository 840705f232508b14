// Package generator builds typing text from word lists.
package generator

import (
	"math/rand"
	"sort"
	"time"
	"unicode"
)

// Options controls one generated text.
type Options struct {
	Count    int
	CapsPct  float64
	PunctPct float64
	PunctSet []rune
	// Weak biases selection toward words containing these runes.
	Weak       map[rune]struct{}
	WeakFactor float64
}

// Generator produces randomized typing text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Intn exposes the generator's random source for callers that draw from
// their own collections.
func (g *Generator) Intn(n int) int {
	return g.rnd.Intn(n)
}

// Generate picks opts.Count words, uniformly or weighted toward weak runes,
// then applies capitalization and trailing punctuation.
func (g *Generator) Generate(words []string, opts Options) []string {
	if len(words) == 0 || opts.Count <= 0 {
		return nil
	}
	pick := g.uniform(words)
	if len(opts.Weak) > 0 && opts.WeakFactor > 0 {
		pick = g.weighted(words, opts.Weak, opts.WeakFactor)
	}
	result := make([]string, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		word := pick()
		word = g.capitalize(word, opts.CapsPct)
		word = g.punctuate(word, opts.PunctPct, opts.PunctSet)
		result = append(result, word)
	}
	return result
}

func (g *Generator) uniform(words []string) func() string {
	return func() string {
		return words[g.rnd.Intn(len(words))]
	}
}

// weighted gives each word weight 1 + weakCount*factor and samples from the
// cumulative distribution.
func (g *Generator) weighted(words []string, weak map[rune]struct{}, factor float64) func() string {
	cumulative := make([]float64, len(words))
	total := 0.0
	for i, word := range words {
		weakCount := 0
		for _, r := range word {
			if _, ok := weak[r]; ok {
				weakCount++
			}
		}
		total += 1.0 + float64(weakCount)*factor
		cumulative[i] = total
	}
	return func() string {
		target := g.rnd.Float64() * total
		idx := sort.SearchFloat64s(cumulative, target)
		if idx >= len(words) {
			idx = len(words) - 1
		}
		return words[idx]
	}
}

func (g *Generator) capitalize(word string, pct float64) string {
	if pct <= 0 || g.rnd.Float64() > pct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func (g *Generator) punctuate(word string, pct float64, set []rune) string {
	if pct <= 0 || len(set) == 0 || g.rnd.Float64() > pct {
		return word
	}
	return word + string(set[g.rnd.Intn(len(set))])
}
