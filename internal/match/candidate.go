package match

import (
	"fmt"
	"sort"
)

// MinScore is the similarity below which a candidate is not worth suggesting.
const MinScore = 0.5

// Candidate is a known name scored against the unknown one.
type Candidate struct {
	Name  string
	Score float64 // Similarity in [0, 1]
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// Rank scores every known name against word, best first.
func Rank(word string, known []string) CandidateList {
	candidates := make(CandidateList, 0, len(known))

	for _, name := range known {
		candidates = append(candidates, Candidate{Name: name, Score: Similarity(word, name)})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns the known name closest to word, if one is close enough
// and not tied with another.
func Suggest(word string, known []string) (string, bool) {
	candidates := Rank(word, known).AboveThreshold(MinScore)
	if len(candidates) == 0 || candidates.IsAmbiguous() {
		return "", false
	}

	return candidates[0].Name, true
}

// Hint formats Suggest's result as a message suffix, or "" without one.
func Hint(word string, known []string) string {
	if s, ok := Suggest(word, known); ok {
		return fmt.Sprintf("; did you mean %q?", s)
	}

	return ""
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by name for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// AboveThreshold returns candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var out CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			out = append(out, cand)
		}
	}

	return out
}

// IsAmbiguous reports whether the top two candidates score the same.
func (c CandidateList) IsAmbiguous() bool {
	return len(c) >= 2 && c[0].Score == c[1].Score
}
