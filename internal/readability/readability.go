// Package readability computes the fixed set of readability statistics for
// a plain-text document: raw counts plus the published Flesch, Flesch-Kincaid,
// Gunning Fog, SMOG, ARI, Coleman-Liau, Dale-Chall, LIX and RIX formulas,
// and a consensus "Text Standard" grade label.
package readability

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/prosecheck/prosecheck/internal/model"
)

// Score computes every metric for the given text. Empty or whitespace-only
// input yields zero for the three counts and the "N/A" sentinel for every
// other metric.
func Score(text string) model.ReadabilityReport {
	if strings.TrimSpace(text) == "" {
		return emptyReport()
	}

	st := analyze(text)

	return model.ReadabilityReport{Metrics: []model.Metric{
		{Name: model.MetricWordCount, Value: model.Num(float64(st.words))},
		{Name: model.MetricSentenceCount, Value: model.Num(float64(st.sentences))},
		{Name: model.MetricCharCount, Value: model.Num(float64(utf8.RuneCountInString(text)))},
		{Name: model.MetricFlesch, Value: model.Num(round2(st.flesch()))},
		{Name: model.MetricKincaid, Value: model.Num(round2(st.kincaid()))},
		{Name: model.MetricGunningFog, Value: model.Num(round2(st.gunningFog()))},
		{Name: model.MetricSMOG, Value: model.Num(round2(st.smog()))},
		{Name: model.MetricARI, Value: model.Num(round2(st.ari()))},
		{Name: model.MetricColemanLiau, Value: model.Num(round2(st.colemanLiau()))},
		{Name: model.MetricDaleChall, Value: model.Num(round2(st.daleChall()))},
		{Name: model.MetricLIX, Value: model.Num(round2(st.lix()))},
		{Name: model.MetricRIX, Value: model.Num(round2(st.rix()))},
		{Name: model.MetricTextStandard, Value: model.Lab(st.textStandard())},
	}}
}

func emptyReport() model.ReadabilityReport {
	metrics := make([]model.Metric, 0, len(model.MetricNames))
	for _, name := range model.MetricNames {
		switch name {
		case model.MetricWordCount, model.MetricSentenceCount, model.MetricCharCount:
			metrics = append(metrics, model.Metric{Name: name, Value: model.Num(0)})
		default:
			metrics = append(metrics, model.Metric{Name: name, Value: model.NA()})
		}
	}
	return model.ReadabilityReport{Metrics: metrics}
}

// stats holds the token-level counts every formula derives from.
type stats struct {
	words         int
	sentences     int
	syllables     int
	letters       int // letters and digits, for ARI and Coleman-Liau
	polysyllables int // words with 3+ syllables
	longWords     int // words longer than 6 letters, for LIX and RIX
}

func analyze(text string) stats {
	var st stats
	for _, w := range words(text) {
		st.words++
		syl := countSyllables(w)
		st.syllables += syl
		if syl >= 3 {
			st.polysyllables++
		}
		n := 0
		for _, r := range w {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				n++
			}
		}
		st.letters += n
		if n > 6 {
			st.longWords++
		}
	}
	st.sentences = countSentences(text)
	return st
}

// words splits text into lexical tokens, stripping surrounding punctuation.
// A token counts as a word if it contains at least one letter or digit.
func words(text string) []string {
	var out []string
	for _, f := range strings.Fields(text) {
		w := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if w == "" {
			continue
		}
		out = append(out, w)
	}
	return out
}

// countSentences counts segments terminated by ., !, ? or the ellipsis rune.
// Text with words but no terminator still counts as one sentence.
func countSentences(text string) int {
	count := 0
	inSentence := false
	for _, r := range text {
		switch {
		case r == '.' || r == '!' || r == '?' || r == '…':
			if inSentence {
				count++
				inSentence = false
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			inSentence = true
		}
	}
	if inSentence {
		count++
	}
	if count == 0 {
		count = 1
	}
	return count
}

func (st stats) wordsPerSentence() float64 {
	return float64(st.words) / float64(st.sentences)
}

func (st stats) syllablesPerWord() float64 {
	return float64(st.syllables) / float64(st.words)
}

// flesch is the Flesch Reading Ease score: higher is easier, roughly 0-100.
func (st stats) flesch() float64 {
	return 206.835 - 1.015*st.wordsPerSentence() - 84.6*st.syllablesPerWord()
}

// kincaid is the Flesch-Kincaid Grade Level.
func (st stats) kincaid() float64 {
	return 0.39*st.wordsPerSentence() + 11.8*st.syllablesPerWord() - 15.59
}

func (st stats) gunningFog() float64 {
	return 0.4 * (st.wordsPerSentence() + 100*float64(st.polysyllables)/float64(st.words))
}

// smog needs a minimum sample; below 3 sentences the index is reported as 0.
func (st stats) smog() float64 {
	if st.sentences < 3 {
		return 0
	}
	return 1.043*math.Sqrt(float64(st.polysyllables)*30/float64(st.sentences)) + 3.1291
}

func (st stats) ari() float64 {
	return 4.71*float64(st.letters)/float64(st.words) + 0.5*st.wordsPerSentence() - 21.43
}

func (st stats) colemanLiau() float64 {
	l := float64(st.letters) / float64(st.words) * 100 // letters per 100 words
	s := float64(st.sentences) / float64(st.words) * 100
	return 0.0588*l - 0.296*s - 15.8
}

// daleChall approximates the difficult-word ratio with the polysyllable
// count, since the fixed 3 000-entry familiar-word list is out of scope.
func (st stats) daleChall() float64 {
	pctDifficult := 100 * float64(st.polysyllables) / float64(st.words)
	score := 0.1579*pctDifficult + 0.0496*st.wordsPerSentence()
	if pctDifficult > 5 {
		score += 3.6365
	}
	return score
}

func (st stats) lix() float64 {
	return st.wordsPerSentence() + 100*float64(st.longWords)/float64(st.words)
}

func (st stats) rix() float64 {
	return float64(st.longWords) / float64(st.sentences)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
