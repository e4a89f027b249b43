package resumeinfo

import (
	"regexp"
	"strings"

	"resume-matcher/internal/nlp"
)

// Vocabulary is the fixed skills dictionary, in display order.
var Vocabulary = []string{
	"Python", "Java", "C", "JavaScript", "SQL", "Machine Learning", "Data Science",
	"Deep Learning", "Django", "React", "Flask", "AWS", "Azure", "NLP",
}

// ExperienceKeywords select the sentences reported as experience.
var ExperienceKeywords = []string{"experience", "years", "worked as", "role"}

var emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// Info is the structured view of a résumé. Empty strings mean "not found".
type Info struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Skills     []string `json:"skills"`
	Experience []string `json:"experience"`
}

// Extract pulls name, email, skills and experience sentences from an analysed résumé.
//
// The name is the first PERSON entity in the text. Nothing checks that it
// belongs to the résumé owner; a referee listed before the owner wins.
func Extract(doc *nlp.Document) Info {
	if doc == nil {
		return Info{Skills: []string{}, Experience: []string{}}
	}
	name, _ := doc.FirstEntity(nlp.LabelPerson)
	return Info{
		Name:       strings.TrimSpace(name),
		Email:      FindEmail(doc.Text),
		Skills:     DetectSkills(doc.Text),
		Experience: experienceSentences(doc.Sentences),
	}
}

// FindEmail returns the first address-shaped substring of text, or "".
func FindEmail(text string) string {
	return emailPattern.FindString(text)
}

// DetectSkills returns the vocabulary entries contained in text, ignoring case.
// Matching is plain substring containment, so short entries such as "C" match
// inside unrelated words.
func DetectSkills(text string) []string {
	lower := strings.ToLower(text)
	out := make([]string, 0, len(Vocabulary))
	for _, skill := range Vocabulary {
		if strings.Contains(lower, strings.ToLower(skill)) {
			out = append(out, skill)
		}
	}
	return out
}

// CanonicalSkills trims and de-duplicates user-supplied skills, rewriting
// entries that match the vocabulary case-insensitively to its spelling.
func CanonicalSkills(raw []string) []string {
	canonical := make(map[string]string, len(Vocabulary))
	for _, skill := range Vocabulary {
		canonical[strings.ToLower(skill)] = skill
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s := strings.TrimSpace(item)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if v, ok := canonical[key]; ok {
			s = v
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

func experienceSentences(sentences []string) []string {
	out := make([]string, 0)
	for _, sent := range sentences {
		lower := strings.ToLower(sent)
		for _, kw := range ExperienceKeywords {
			if strings.Contains(lower, kw) {
				out = append(out, sent)
				break
			}
		}
	}
	return out
}
