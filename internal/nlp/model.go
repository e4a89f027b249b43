package nlp

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
)

// LabelPerson is the entity label the extractor assigns to people.
const LabelPerson = "PERSON"

// ModelName identifies the bundled English pipeline in health output.
const ModelName = "prose/v2 en"

// Model is the process-wide language pipeline. It is built once by Load and
// only read afterwards, so a single instance can serve every request.
type Model struct {
	prose     *prose.Model
	stopwords map[string]struct{}
}

// Entity is a named span recognised in the text.
type Entity struct {
	Text  string
	Label string
}

// Document is the analysed form of one text.
type Document struct {
	Text      string
	Tokens    []string
	Sentences []string
	Entities  []Entity

	stopwords map[string]struct{}
}

// Load builds the tagger and entity extractor bundled with prose.
func Load() (*Model, error) {
	warm, err := prose.NewDocument("Jane Doe worked in Boston.")
	if err != nil {
		return nil, fmt.Errorf("load nlp model: %w", err)
	}
	if warm.Model == nil {
		return nil, fmt.Errorf("load nlp model: no model attached")
	}
	return &Model{prose: warm.Model, stopwords: stopwordSet()}, nil
}

// Analyze tokenizes, segments and runs entity recognition over text.
func (m *Model) Analyze(text string) (*Document, error) {
	out := &Document{Text: text, stopwords: m.stopwordSet()}
	if strings.TrimSpace(text) == "" {
		return out, nil
	}

	doc, err := prose.NewDocument(text, prose.UsingModel(m.prose))
	if err != nil {
		return nil, fmt.Errorf("analyze text: %w", err)
	}

	toks := doc.Tokens()
	out.Tokens = make([]string, 0, len(toks))
	for _, tok := range toks {
		out.Tokens = append(out.Tokens, tok.Text)
	}
	for _, sent := range doc.Sentences() {
		out.Sentences = append(out.Sentences, sent.Text)
	}
	for _, ent := range doc.Entities() {
		out.Entities = append(out.Entities, Entity{Text: ent.Text, Label: ent.Label})
	}
	return out, nil
}

// IsStopword reports whether the lowercased word is an English stopword.
func (m *Model) IsStopword(word string) bool {
	_, ok := m.stopwordSet()[strings.ToLower(word)]
	return ok
}

func (m *Model) stopwordSet() map[string]struct{} {
	if m == nil || m.stopwords == nil {
		return defaultStopwords
	}
	return m.stopwords
}

var defaultStopwords = stopwordSet()

// Keywords returns the lowercased tokens that are neither stopwords nor pure
// punctuation, in document order.
func (d *Document) Keywords() []string {
	if d == nil {
		return nil
	}
	stop := d.stopwords
	if stop == nil {
		stop = defaultStopwords
	}
	out := make([]string, 0, len(d.Tokens))
	for _, tok := range d.Tokens {
		lower := strings.ToLower(strings.TrimSpace(tok))
		if lower == "" || !hasWordRune(lower) {
			continue
		}
		if _, ok := stop[lower]; ok {
			continue
		}
		out = append(out, lower)
	}
	return out
}

// FirstEntity returns the text of the first entity carrying label.
func (d *Document) FirstEntity(label string) (string, bool) {
	if d == nil {
		return "", false
	}
	for _, ent := range d.Entities {
		if ent.Label == label {
			return ent.Text, true
		}
	}
	return "", false
}

func hasWordRune(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
