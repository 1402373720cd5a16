package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"", "", 0},
		{"offset", "offset", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"a", "ab", 1},
		{"ab", "a", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"ofset", "offset", 1},
		{"chekc", "check", 2},
		{"Skip", "skip", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a), "distance is symmetric")
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 1.0, Similarity("RejectAliases", "reject_aliases"), 1e-9)
	assert.InDelta(t, 1.0, Similarity("reject-aliases", "reject_aliases"), 1e-9)
	assert.InDelta(t, 5.0/6.0, Similarity("ofset", "offset"), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
}

func TestNormalizeIdent(t *testing.T) {
	assert.Equal(t, "rejectaliases", NormalizeIdent("Reject_Aliases"))
	assert.Equal(t, "nocomments", NormalizeIdent("no-comments"))
	assert.Equal(t, "", NormalizeIdent("_-"))
}

func TestRank(t *testing.T) {
	ranked := Rank("skp", []string{"offset", "check", "skip"})

	assert.Equal(t, "skip", ranked[0].Name)
	assert.Len(t, ranked, 3)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestRank_Determinism(t *testing.T) {
	known := []string{"bb", "aa", "cc"}

	first := Rank("zz", known)
	for range 10 {
		assert.Equal(t, first, Rank("zz", known))
	}

	assert.Equal(t, "aa", first[0].Name, "ties break by name")
}

func TestSuggest(t *testing.T) {
	directives := []string{"offset", "check", "skip"}

	tests := []struct {
		word string
		want string
		ok   bool
	}{
		{"ofset", "offset", true},
		{"Offset", "offset", true},
		{"chek", "check", true},
		{"skipp", "skip", true},
		{"banana", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, ok := Suggest(tt.word, directives)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSuggest_Ambiguous(t *testing.T) {
	_, ok := Suggest("ab", []string{"aa", "bb"})
	assert.False(t, ok)
}

func TestHint(t *testing.T) {
	assert.Equal(t, `; did you mean "table"?`, Hint("tabel", []string{"convention", "table", "receiver"}))
	assert.Empty(t, Hint("zzzzzz", []string{"convention", "table", "receiver"}))
}

func TestCandidateList_AboveThreshold(t *testing.T) {
	list := CandidateList{{Name: "a", Score: 0.9}, {Name: "b", Score: 0.5}, {Name: "c", Score: 0.1}}

	assert.Len(t, list.AboveThreshold(0.5), 2)
	assert.Empty(t, list.AboveThreshold(0.95))
	assert.False(t, list.IsAmbiguous())
}
