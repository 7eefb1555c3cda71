package model

import (
	"encoding/json"
	"time"
)

// Metric key names. These are the exact labels shown to users and written
// to JSON/Markdown reports.
const (
	MetricWordCount     = "Word Count"
	MetricSentenceCount = "Sentence Count"
	MetricCharCount     = "Character Count"
	MetricFlesch        = "Flesch Reading Ease"
	MetricKincaid       = "Flesch-Kincaid Grade Level"
	MetricGunningFog    = "Gunning Fog Index"
	MetricSMOG          = "SMOG Index"
	MetricARI           = "ARI (Automated Readability Index)"
	MetricColemanLiau   = "Coleman-Liau Index"
	MetricDaleChall     = "Dale-Chall Readability Score"
	MetricLIX           = "LIX Score"
	MetricRIX           = "RIX Score"
	MetricTextStandard  = "Text Standard"
)

// MetricNames lists every readability metric key in display order.
var MetricNames = []string{
	MetricWordCount,
	MetricSentenceCount,
	MetricCharCount,
	MetricFlesch,
	MetricKincaid,
	MetricGunningFog,
	MetricSMOG,
	MetricARI,
	MetricColemanLiau,
	MetricDaleChall,
	MetricLIX,
	MetricRIX,
	MetricTextStandard,
}

// NotApplicable is the sentinel reported for metrics that cannot be computed
// (empty input, failed classification).
const NotApplicable = "N/A"

// MetricValue is either a numeric score, a categorical label, or the
// "N/A" sentinel. Exactly one of the variants is active.
type MetricValue struct {
	Number float64
	Label  string
	NA     bool
}

// Num returns a numeric metric value.
func Num(v float64) MetricValue { return MetricValue{Number: v} }

// Lab returns a categorical metric value.
func Lab(s string) MetricValue { return MetricValue{Label: s} }

// NA returns the not-applicable sentinel.
func NA() MetricValue { return MetricValue{NA: true} }

// String renders the value the way the report displays it.
func (v MetricValue) String() string {
	switch {
	case v.NA:
		return NotApplicable
	case v.Label != "":
		return v.Label
	default:
		return trimFloat(v.Number)
	}
}

// MarshalJSON emits a number, a string, or "N/A".
func (v MetricValue) MarshalJSON() ([]byte, error) {
	switch {
	case v.NA:
		return json.Marshal(NotApplicable)
	case v.Label != "":
		return json.Marshal(v.Label)
	default:
		return json.Marshal(v.Number)
	}
}

func trimFloat(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}

// Metric is one named readability statistic.
type Metric struct {
	Name  string      `json:"name"`
	Value MetricValue `json:"value"`
}

// ReadabilityReport holds the full fixed set of metrics for one document.
// Immutable once produced.
type ReadabilityReport struct {
	Metrics []Metric `json:"metrics"`
}

// Get looks up a metric by name.
func (r ReadabilityReport) Get(name string) (MetricValue, bool) {
	for _, m := range r.Metrics {
		if m.Name == name {
			return m.Value, true
		}
	}
	return MetricValue{}, false
}

// GrammarIssue is one match reported by the grammar engine, in source-text
// order. Offset and Length are rune indices into the analyzed text.
type GrammarIssue struct {
	Context   string `json:"context"` // the matched span, sliced from the source text
	Message   string `json:"message"`
	Category  string `json:"category"`  // engine rule ID
	RuleName  string `json:"rule_name"` // engine issue type (misspelling, grammar, style, ...)
	Suggested string `json:"suggested"` // joined replacements, or "N/A"
	Offset    int    `json:"offset"`
	Length    int    `json:"length"`
}

// Classification is a single-label classifier outcome with confidence.
// Label is "N/A" for empty input and "Error" when the classifier failed.
type Classification struct {
	Label string  `json:"label"`
	Score float64 `json:"score,omitempty"`
}

// ToneResult bundles the optional sentiment and formality classifications.
type ToneResult struct {
	Sentiment Classification `json:"sentiment"`
	Formality Classification `json:"formality"`
}

// Report is the complete result of analyzing one document.
type Report struct {
	ID            string    `json:"id"`
	Source        string    `json:"source"` // filename, "stdin", or "paste"
	Format        Format    `json:"format"`
	ExtractStatus string    `json:"extract_status"`
	AnalyzedAt    time.Time `json:"analyzed_at"`

	Readability ReadabilityReport `json:"readability"`
	Issues      []GrammarIssue    `json:"issues"`
	Tone        *ToneResult       `json:"tone,omitempty"`

	Warnings []string `json:"warnings,omitempty"` // non-fatal degradations (engine down, etc.)
}
