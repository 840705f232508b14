package stats

import (
	"sort"

	"github.com/verte-zerg/typemaster/internal/model"
)

// SelectWeakChars picks up to top characters with the lowest accuracy.
// Characters typed without a single miss are never weak, so a clean
// history yields an empty set. top <= 0 selects every missed character.
func SelectWeakChars(aggs []model.CharAggregate, top int) map[rune]struct{} {
	weakSet := map[rune]struct{}{}
	var missed []model.CharAggregate
	for _, agg := range aggs {
		if agg.Incorrect > 0 && agg.Char != " " {
			missed = append(missed, agg)
		}
	}
	sortByAccuracy(missed)
	if top <= 0 || top > len(missed) {
		top = len(missed)
	}
	for _, agg := range missed[:top] {
		if runes := []rune(agg.Char); len(runes) > 0 {
			weakSet[runes[0]] = struct{}{}
		}
	}
	return weakSet
}

// TopCharsByFrequency returns the n most typed characters, ties broken
// alphabetically.
func TopCharsByFrequency(aggs []model.CharAggregate, n int) []string {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	sorted := make([]model.CharAggregate, len(aggs))
	copy(sorted, aggs)
	sort.Slice(sorted, func(i, j int) bool {
		ti := sorted[i].Correct + sorted[i].Incorrect
		tj := sorted[j].Correct + sorted[j].Incorrect
		if ti == tj {
			return sorted[i].Char < sorted[j].Char
		}
		return ti > tj
	})
	out := make([]string, 0, min(n, len(sorted)))
	for _, agg := range sorted[:min(n, len(sorted))] {
		out = append(out, agg.Char)
	}
	return out
}

func sortByAccuracy(aggs []model.CharAggregate) {
	sort.Slice(aggs, func(i, j int) bool {
		ai, aj := accuracy(aggs[i]), accuracy(aggs[j])
		if ai == aj {
			return aggs[i].Char < aggs[j].Char
		}
		return ai < aj
	})
}

func accuracy(agg model.CharAggregate) float64 {
	total := agg.Correct + agg.Incorrect
	if total == 0 {
		return 1.0
	}
	return float64(agg.Correct) / float64(total)
}
