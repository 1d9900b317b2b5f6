package classifier

import "strings"

// Label is the routing hint for a question. It is a cheap lexical verdict,
// explicitly allowed to misclassify; callers must not treat it as ground truth.
type Label string

const (
	General          Label = "GENERAL"
	DocumentSpecific Label = "DOCUMENT_SPECIFIC"
)

// Strategy classifies a question. Kept behind an interface so the keyword
// heuristic can be swapped without touching the orchestrator.
type Strategy interface {
	Classify(question string) Label
}

// generalKeywords mark questions about generic domain knowledge - rates,
// definitions, regulations - which a user's own uploads are unlikely to
// answer and which live sources serve better.
var generalKeywords = []string{
	"current",
	"average",
	"typical",
	"define",
	"definition",
	"difference between",
	"requirements for",
	"process of",
	"rate",
	"rates",
	"guidelines",
	"rules",
	"regulations",
	"qualify",
}

type KeywordStrategy struct {
	keywords []string
}

// NewKeywordStrategy builds the default keyword classifier. An empty list
// falls back to the built-in set.
func NewKeywordStrategy(keywords ...string) *KeywordStrategy {
	if len(keywords) == 0 {
		keywords = generalKeywords
	}
	return &KeywordStrategy{keywords: keywords}
}

func (s *KeywordStrategy) Classify(question string) Label {
	lowered := strings.ToLower(question)
	for _, keyword := range s.keywords {
		if strings.Contains(lowered, keyword) {
			return General
		}
	}
	return DocumentSpecific
}
