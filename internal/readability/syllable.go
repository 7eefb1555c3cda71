package readability

import (
	"strings"
	"unicode"
)

// countSyllables estimates the syllable count of a single word using the
// standard vowel-group heuristic: count maximal runs of vowels, drop a
// trailing silent "e", and never report fewer than one syllable.
func countSyllables(word string) int {
	var b strings.Builder
	for _, r := range strings.ToLower(word) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	w := b.String()
	if w == "" {
		return 1
	}

	count := 0
	prevVowel := false
	for _, r := range w {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	// Silent trailing "e" ("make", "note"), but keep the consonant-"le"
	// syllable ("table", "little").
	if strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") && count > 1 {
		count--
	}

	if count < 1 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
