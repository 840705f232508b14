// Package metrics computes typing speed and accuracy figures.
//
// Every function is pure: the same reference, typed text and elapsed time
// always produce the same result. Positions are counted in runes.
package metrics

import "math"

// CharsPerWord is the standard word length used to normalize WPM.
const CharsPerWord = 5

// Snapshot describes typing performance at one observation point.
type Snapshot struct {
	WPM      int
	Accuracy int
	Errors   int
	Correct  int
	Total    int
}

// Live is recomputed on every keystroke and tick while a session runs.
type Live struct {
	Snapshot
	RemainingSeconds int
}

// Final is frozen when a session finishes.
type Final struct {
	Snapshot
	ElapsedSeconds float64
}

// CharCount tallies how often an expected rune was typed correctly.
type CharCount struct {
	Char      rune
	Correct   int
	Incorrect int
}

// CorrectChars counts positions where typed matches reference.
func CorrectChars(reference, typed string) int {
	return correctRunes([]rune(reference), []rune(typed))
}

// ErrorChars counts mismatched positions plus any runes typed past the end
// of reference, so CorrectChars+ErrorChars always equals the typed length.
func ErrorChars(reference, typed string) int {
	ref := []rune(reference)
	in := []rune(typed)
	return len(in) - correctRunes(ref, in)
}

// Accuracy returns the rounded percentage of correct runes. An empty input
// is fully accurate.
func Accuracy(total, correct int) int {
	if total <= 0 {
		return 100
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// WordsPerMinute normalizes correct runes to five-character words per
// minute. Non-positive elapsed time yields 0.
func WordsPerMinute(correct int, elapsedSeconds float64) int {
	if elapsedSeconds <= 0 {
		return 0
	}
	words := float64(correct) / CharsPerWord
	return int(math.Round(words / (elapsedSeconds / 60)))
}

// Compute derives a full snapshot.
func Compute(reference, typed string, elapsedSeconds float64) Snapshot {
	return computeRunes([]rune(reference), []rune(typed), elapsedSeconds)
}

// ComputeRunes is Compute for callers that already hold rune slices.
func ComputeRunes(reference, typed []rune, elapsedSeconds float64) Snapshot {
	return computeRunes(reference, typed, elapsedSeconds)
}

func computeRunes(reference, typed []rune, elapsedSeconds float64) Snapshot {
	correct := correctRunes(reference, typed)
	total := len(typed)
	return Snapshot{
		WPM:      WordsPerMinute(correct, elapsedSeconds),
		Accuracy: Accuracy(total, correct),
		Errors:   total - correct,
		Correct:  correct,
		Total:    total,
	}
}

// CharBreakdown tallies per expected rune, skipping spaces and runes typed
// past the end of reference. Entries keep first-seen order.
func CharBreakdown(reference, typed string) []CharCount {
	ref := []rune(reference)
	in := []rune(typed)
	n := min(len(ref), len(in))
	index := map[rune]int{}
	var out []CharCount
	for i := 0; i < n; i++ {
		expected := ref[i]
		if expected == ' ' {
			continue
		}
		idx, ok := index[expected]
		if !ok {
			idx = len(out)
			index[expected] = idx
			out = append(out, CharCount{Char: expected})
		}
		if in[i] == expected {
			out[idx].Correct++
		} else {
			out[idx].Incorrect++
		}
	}
	return out
}

func correctRunes(reference, typed []rune) int {
	n := min(len(reference), len(typed))
	correct := 0
	for i := 0; i < n; i++ {
		if reference[i] == typed[i] {
			correct++
		}
	}
	return correct
}
