package matching

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-matcher/internal/resumeinfo"
)

func TestMatchPercentageExample(t *testing.T) {
	resumeSkills := resumeinfo.DetectSkills("Contact: jane@example.com. Skills: Python, AWS.")

	got := MatchPercentage(resumeSkills, []string{"Python", "AWS", "Java"})

	assert.Equal(t, 66.67, got)
}

func TestMatchPercentageEmptyJobSkills(t *testing.T) {
	assert.Equal(t, 0.0, MatchPercentage([]string{"Python"}, nil))
	assert.Equal(t, 0.0, MatchPercentage(nil, []string{}))
}

func TestMatchPercentageNeverRoundsPartialMatchToFull(t *testing.T) {
	job := make([]string, 20001)
	for i := range job {
		job[i] = "skill-" + strconv.Itoa(i)
	}

	assert.Equal(t, 99.99, MatchPercentage(job[1:], job))
	assert.Equal(t, 100.0, MatchPercentage(job, job))
}

func TestMatchPercentageTreatsInputsAsSets(t *testing.T) {
	got := MatchPercentage([]string{"Python", "Python"}, []string{"Python", "Python", "SQL"})

	assert.Equal(t, 50.0, got)
}

func TestMatchPercentageProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	vocab := resumeinfo.Vocabulary

	pick := func() []string {
		var out []string
		for _, s := range vocab {
			if rng.Intn(2) == 0 {
				out = append(out, s)
			}
		}
		return out
	}

	for i := 0; i < 500; i++ {
		resume, job := pick(), pick()
		got := MatchPercentage(resume, job)

		require.GreaterOrEqual(t, got, 0.0)
		require.LessOrEqual(t, got, 100.0)

		subset := len(job) > 0
		have := toSet(resume)
		for _, s := range job {
			if _, ok := have[s]; !ok {
				subset = false
				break
			}
		}
		require.Equal(t, subset, got == 100, "resume=%v job=%v got=%v", resume, job, got)
	}
}

func TestNewResultCarriesScore(t *testing.T) {
	kw := Keywords{MatchingKeywords: []string{"python"}, HighlightedTokens: []Token{{Text: "python", Matched: true}}}

	res := NewResult(kw, []string{"Python", "AWS"}, []string{"Python", "AWS"})

	assert.Equal(t, 100.0, res.MatchPercentage)
	assert.Equal(t, []string{"python"}, res.MatchingKeywords)
}
