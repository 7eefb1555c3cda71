// Package severity maps readability scores onto display concern levels.
// Every function here is a pure, total threshold-table lookup; the tables
// are the only display-policy logic the project owns.
package severity

import (
	"strings"

	"github.com/prosecheck/prosecheck/internal/model"
)

// Level is a display concern category.
type Level string

const (
	Low     Level = "low"     // comfortable for a general audience
	Medium  Level = "medium"  // high-school difficulty
	High    Level = "high"    // college difficulty and above
	Unknown Level = "unknown" // N/A or unrecognized values
)

// Color returns the display color conventionally used for the level.
func (l Level) Color() string {
	switch l {
	case Low:
		return "green"
	case Medium:
		return "orange"
	case High:
		return "red"
	default:
		return "gray"
	}
}

// band is one row of an ordered threshold table: the first row whose Min the
// score reaches wins.
type band struct {
	Min   float64
	Level Level
}

// Flesch Reading Ease: higher is easier.
var fleschBands = []band{
	{Min: 60, Level: Low},
	{Min: 30, Level: Medium},
	{Min: -1 << 30, Level: High},
}

// Grade-level metrics: lower is easier. Boundaries are exclusive: a grade
// of exactly 8 is still Low, exactly 12 still Medium.
var gradeBands = []band{
	{Min: 12, Level: High},
	{Min: 8, Level: Medium},
	{Min: -1 << 30, Level: Low},
}

func lookup(table []band, score float64) Level {
	for _, b := range table {
		if score >= b.Min {
			return b.Level
		}
	}
	return Unknown
}

// lookupAbove is the boundary-exclusive variant: the first row whose Min the
// score strictly exceeds wins.
func lookupAbove(table []band, score float64) Level {
	for _, b := range table {
		if score > b.Min {
			return b.Level
		}
	}
	return Unknown
}

// Flesch bands a Flesch Reading Ease value. N/A maps to Unknown.
func Flesch(v model.MetricValue) Level {
	if v.NA || v.Label != "" {
		return Unknown
	}
	return lookup(fleschBands, v.Number)
}

// Grade bands a single-number grade-level metric. N/A maps to Unknown.
func Grade(v model.MetricValue) Level {
	if v.NA || v.Label != "" {
		return Unknown
	}
	return lookupAbove(gradeBands, v.Number)
}

var (
	lowGradeNames    = []string{"5th", "6th", "7th", "8th"}
	mediumGradeNames = []string{"9th", "10th", "11th", "12th"}
	highGradeNames   = []string{"College", "Graduate"}
)

// Standard bands the categorical Text Standard label by grade-name substring.
func Standard(label string) Level {
	for _, name := range lowGradeNames {
		if strings.Contains(label, name) {
			return Low
		}
	}
	for _, name := range mediumGradeNames {
		if strings.Contains(label, name) {
			return Medium
		}
	}
	for _, name := range highGradeNames {
		if strings.Contains(label, name) {
			return High
		}
	}
	return Unknown
}

// ForMetric picks the right band table for a named readability metric.
// Count metrics and unrecognized names report Unknown.
func ForMetric(name string, v model.MetricValue) Level {
	switch name {
	case model.MetricFlesch:
		return Flesch(v)
	case model.MetricKincaid, model.MetricGunningFog, model.MetricSMOG,
		model.MetricARI, model.MetricColemanLiau, model.MetricDaleChall:
		return Grade(v)
	case model.MetricTextStandard:
		return Standard(v.Label)
	default:
		return Unknown
	}
}
