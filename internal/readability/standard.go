package readability

import (
	"fmt"
	"math"
)

// textStandard derives the categorical grade-level estimate as the consensus
// (mode, lowest on ties) of the rounded grade estimates from the individual
// formulas. Grades 1-12 render as school grades, 13-16 as "College", and
// anything above as "College Graduate".
func (st stats) textStandard() string {
	grades := []float64{
		st.kincaid(),
		st.gunningFog(),
		st.ari(),
		st.colemanLiau(),
		fleschToGrade(st.flesch()),
	}
	if st.sentences >= 3 {
		grades = append(grades, st.smog())
	}

	votes := make(map[int]int)
	for _, g := range grades {
		n := int(math.Round(g))
		if n < 1 {
			n = 1
		}
		votes[n]++
	}

	best, bestCount := 0, 0
	for grade, count := range votes {
		if count > bestCount || (count == bestCount && grade < best) {
			best, bestCount = grade, count
		}
	}

	return gradeLabel(best)
}

// fleschToGrade converts a Flesch Reading Ease score onto the grade scale
// used by the consensus vote.
func fleschToGrade(score float64) float64 {
	switch {
	case score >= 90:
		return 5
	case score >= 80:
		return 6
	case score >= 70:
		return 7
	case score >= 60:
		return 8.5
	case score >= 50:
		return 10.5
	case score >= 30:
		return 12.5
	default:
		return 15
	}
}

func gradeLabel(grade int) string {
	switch {
	case grade >= 17:
		return "College Graduate"
	case grade >= 13:
		return "College"
	default:
		return fmt.Sprintf("%s and %s grade", ordinal(grade), ordinal(grade+1))
	}
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 10 {
	case 1:
		if n%100 != 11 {
			suffix = "st"
		}
	case 2:
		if n%100 != 12 {
			suffix = "nd"
		}
	case 3:
		if n%100 != 13 {
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
