package wordlist

import "strings"

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForLang returns a language-specific filter. Unknown languages keep
// every word.
func FilterForLang(lang string) FilterFunc {
	switch strings.ToLower(lang) {
	case "", "en":
		return lowerASCII
	default:
		return func(string) bool { return true }
	}
}

func lowerASCII(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return false
		}
	}
	return true
}
