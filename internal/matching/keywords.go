package matching

import (
	"sort"

	"resume-matcher/internal/nlp"
)

// Token is one résumé keyword, flagged when the job description also uses it.
type Token struct {
	Text    string `json:"text"`
	Matched bool   `json:"matched"`
}

// KeywordCount is how often a matching keyword occurs in the résumé.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// Keywords is the keyword-overlap part of a match.
type Keywords struct {
	MatchingKeywords  []string
	HighlightedTokens []Token
	Counts            []KeywordCount
}

// MatchKeywords compares the keywords of a résumé and a job description.
// A job keyword matches when it occurs anywhere in the résumé; repeats in the
// job description are reported each time, in job order.
func MatchKeywords(resume, job *nlp.Document) Keywords {
	resumeKeywords := resume.Keywords()
	jobKeywords := job.Keywords()

	frequency := make(map[string]int, len(resumeKeywords))
	for _, kw := range resumeKeywords {
		frequency[kw]++
	}

	matching := make([]string, 0)
	matched := make(map[string]struct{})
	for _, kw := range jobKeywords {
		if frequency[kw] > 0 {
			matching = append(matching, kw)
			matched[kw] = struct{}{}
		}
	}

	highlighted := make([]Token, 0, len(resumeKeywords))
	for _, kw := range resumeKeywords {
		_, ok := matched[kw]
		highlighted = append(highlighted, Token{Text: kw, Matched: ok})
	}

	counts := make([]KeywordCount, 0, len(matched))
	for kw := range matched {
		counts = append(counts, KeywordCount{Keyword: kw, Count: frequency[kw]})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Keyword < counts[j].Keyword
	})

	return Keywords{
		MatchingKeywords:  matching,
		HighlightedTokens: highlighted,
		Counts:            counts,
	}
}
