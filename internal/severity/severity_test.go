package severity

import (
	"testing"

	"github.com/prosecheck/prosecheck/internal/model"
)

func TestFleschBands(t *testing.T) {
	tests := []struct {
		score float64
		want  Level
	}{
		{75, Low},
		{60, Low},
		{59.9, Medium},
		{45, Medium},
		{30, Medium},
		{29.9, High},
		{10, High},
		{-12, High}, // Flesch can go negative on dense text
	}
	for _, tt := range tests {
		if got := Flesch(model.Num(tt.score)); got != tt.want {
			t.Errorf("Flesch(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}

	if got := Flesch(model.NA()); got != Unknown {
		t.Errorf("Flesch(N/A) = %s, want unknown", got)
	}
}

func TestGradeBands(t *testing.T) {
	tests := []struct {
		score float64
		want  Level
	}{
		{6, Low},
		{8, Low},
		{8.5, Medium}, // grade scores are rounded floats; boundaries are exclusive
		{9, Medium},
		{10, Medium},
		{12, Medium},
		{12.01, High},
		{12.5, High},
		{13, High},
		{14, High},
	}
	for _, tt := range tests {
		if got := Grade(model.Num(tt.score)); got != tt.want {
			t.Errorf("Grade(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}

	if got := Grade(model.NA()); got != Unknown {
		t.Errorf("Grade(N/A) = %s, want unknown", got)
	}
}

func TestStandardBands(t *testing.T) {
	tests := []struct {
		label string
		want  Level
	}{
		{"5th and 6th grade", Low},
		{"7th and 8th grade", Low},
		{"9th and 10th grade", Medium},
		{"11th and 12th grade", Medium},
		{"College", High},
		{"College Graduate", High},
		{"N/A", Unknown},
		{"", Unknown},
	}
	for _, tt := range tests {
		if got := Standard(tt.label); got != tt.want {
			t.Errorf("Standard(%q) = %s, want %s", tt.label, got, tt.want)
		}
	}
}

func TestForMetric(t *testing.T) {
	if got := ForMetric(model.MetricFlesch, model.Num(75)); got != Low {
		t.Errorf("flesch 75 = %s, want low", got)
	}
	if got := ForMetric(model.MetricKincaid, model.Num(14)); got != High {
		t.Errorf("kincaid 14 = %s, want high", got)
	}
	if got := ForMetric(model.MetricWordCount, model.Num(100)); got != Unknown {
		t.Errorf("word count should not band, got %s", got)
	}
	if got := ForMetric(model.MetricTextStandard, model.Lab("College")); got != High {
		t.Errorf("text standard College = %s, want high", got)
	}
}

func TestLevelColor(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{Low, "green"},
		{Medium, "orange"},
		{High, "red"},
		{Unknown, "gray"},
	}
	for _, tt := range tests {
		if got := tt.level.Color(); got != tt.want {
			t.Errorf("%s.Color() = %q, want %q", tt.level, got, tt.want)
		}
	}
}
