package readability

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/prosecheck/prosecheck/internal/model"
)

func TestScoreEmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t  \n"} {
		report := Score(text)

		if len(report.Metrics) != len(model.MetricNames) {
			t.Fatalf("Score(%q): got %d metrics, want %d", text, len(report.Metrics), len(model.MetricNames))
		}

		for _, m := range report.Metrics {
			switch m.Name {
			case model.MetricWordCount, model.MetricSentenceCount, model.MetricCharCount:
				if m.Value.NA || m.Value.Number != 0 {
					t.Errorf("Score(%q): %s = %v, want numeric 0", text, m.Name, m.Value)
				}
			default:
				if !m.Value.NA {
					t.Errorf("Score(%q): %s = %v, want N/A", text, m.Name, m.Value)
				}
			}
		}
	}
}

func TestScoreSimpleSentence(t *testing.T) {
	report := Score("This is a simple test sentence.")

	if v, _ := report.Get(model.MetricWordCount); v.Number != 6 {
		t.Errorf("Word Count = %v, want 6", v)
	}
	if v, _ := report.Get(model.MetricSentenceCount); v.Number != 1 {
		t.Errorf("Sentence Count = %v, want 1", v)
	}
}

func TestScoreCharacterCount(t *testing.T) {
	inputs := []string{
		"This is a simple test sentence.",
		"  leading and trailing  ",
		"punctuation, everywhere! truly?",
		"héllo wörld — café", // non-ASCII counts code points, not bytes
	}
	for _, text := range inputs {
		report := Score(text)
		v, ok := report.Get(model.MetricCharCount)
		if !ok {
			t.Fatalf("Character Count missing for %q", text)
		}
		if int(v.Number) != utf8.RuneCountInString(text) {
			t.Errorf("Character Count for %q = %v, want %d", text, v.Number, utf8.RuneCountInString(text))
		}
	}
}

func TestScoreAllMetricsPresent(t *testing.T) {
	report := Score("The quick brown fox jumps over the lazy dog. It barked.")

	for _, name := range model.MetricNames {
		v, ok := report.Get(name)
		if !ok {
			t.Errorf("metric %q missing", name)
			continue
		}
		if v.NA {
			t.Errorf("metric %q is N/A for non-empty text", name)
		}
	}

	// Text Standard must be a label, not a number.
	if v, _ := report.Get(model.MetricTextStandard); v.Label == "" {
		t.Error("Text Standard must be categorical")
	}
}

func TestScoreFleschRange(t *testing.T) {
	easy := Score("The cat sat. The dog ran. We had fun. It was a good day.")
	hard := Score("Notwithstanding considerable epistemological disagreement, contemporary " +
		"philosophical investigations concerning phenomenological intentionality " +
		"demonstrate extraordinarily sophisticated argumentative methodologies.")

	easyV, _ := easy.Get(model.MetricFlesch)
	hardV, _ := hard.Get(model.MetricFlesch)

	if easyV.Number <= hardV.Number {
		t.Errorf("easy text (%v) should score higher than hard text (%v)", easyV.Number, hardV.Number)
	}
	if easyV.Number < 60 {
		t.Errorf("monosyllabic text scored %v, expected >= 60", easyV.Number)
	}
}

func TestCountSentences(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"One. Two. Three.", 3},
		{"No terminator at all", 1},
		{"Question? Answer! Statement.", 3},
		{"Ellipsis… then more.", 2},
		{"Multiple!!! terminators??? collapse.", 3},
		{"Trailing words after a period. like this", 2},
	}
	for _, tt := range tests {
		if got := countSentences(tt.text); got != tt.want {
			t.Errorf("countSentences(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestWords(t *testing.T) {
	got := words("Hello, world! It's 42 -- degrees.")
	want := []string{"Hello", "world", "It's", "42", "degrees"}
	if len(got) != len(want) {
		t.Fatalf("words() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("words()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"table", 2},
		{"make", 1},
		{"beautiful", 3},
		{"the", 1},
		{"readability", 5},
		{"a", 1},
		{"rhythm", 1},
		{"sentence", 2},
	}
	for _, tt := range tests {
		if got := countSyllables(tt.word); got != tt.want {
			t.Errorf("countSyllables(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
}

func TestGradeLabel(t *testing.T) {
	tests := []struct {
		grade int
		want  string
	}{
		{5, "5th and 6th grade"},
		{8, "8th and 9th grade"},
		{11, "11th and 12th grade"},
		{13, "College"},
		{16, "College"},
		{17, "College Graduate"},
		{1, "1st and 2nd grade"},
		{2, "2nd and 3rd grade"},
		{3, "3rd and 4th grade"},
	}
	for _, tt := range tests {
		if got := gradeLabel(tt.grade); got != tt.want {
			t.Errorf("gradeLabel(%d) = %q, want %q", tt.grade, got, tt.want)
		}
	}
}

func TestTextStandardSimpleText(t *testing.T) {
	report := Score(strings.Repeat("The cat sat on the mat. ", 10))
	v, _ := report.Get(model.MetricTextStandard)
	if !strings.Contains(v.Label, "grade") {
		t.Errorf("expected a school-grade label for trivial text, got %q", v.Label)
	}
}
