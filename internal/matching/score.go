package matching

import "math"

// maxPartialPercentage is reported when rounding would show a partial match as 100.
const maxPartialPercentage = 99.99

// Result is the full comparison of a résumé against a job description.
type Result struct {
	MatchingKeywords  []string       `json:"matchingKeywords"`
	HighlightedTokens []Token        `json:"highlightedTokens"`
	KeywordCounts     []KeywordCount `json:"keywordCounts"`
	MatchPercentage   float64        `json:"matchPercentage"`
}

// NewResult combines keyword overlap with the skill score.
func NewResult(kw Keywords, resumeSkills, jobSkills []string) Result {
	return Result{
		MatchingKeywords:  kw.MatchingKeywords,
		HighlightedTokens: kw.HighlightedTokens,
		KeywordCounts:     kw.Counts,
		MatchPercentage:   MatchPercentage(resumeSkills, jobSkills),
	}
}

// MatchPercentage is the share of distinct job skills also present in the
// résumé skills, as a percentage rounded to two decimals. It is 0 when there
// are no job skills and 100 only when every job skill is present.
func MatchPercentage(resumeSkills, jobSkills []string) float64 {
	job := toSet(jobSkills)
	if len(job) == 0 {
		return 0
	}
	have := toSet(resumeSkills)
	common := 0
	for skill := range job {
		if _, ok := have[skill]; ok {
			common++
		}
	}
	pct := math.Round(float64(common)/float64(len(job))*100*100) / 100
	if pct == 100 && common < len(job) {
		return maxPartialPercentage
	}
	return pct
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
