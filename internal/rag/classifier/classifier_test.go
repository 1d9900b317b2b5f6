package classifier

import "testing"

func TestClassify(t *testing.T) {
	s := NewKeywordStrategy()

	tests := []struct {
		question string
		expected Label
	}{
		{"What is the current average mortgage rate?", General},
		{"What is the loan amount on page 3 of my statement?", DocumentSpecific},
		{"What are the REQUIREMENTS FOR an FHA loan?", General},
		{"Do I qualify for a jumbo loan?", General},
		{"Who signed my closing disclosure?", DocumentSpecific},
		{"Summarize section 4 of my loan agreement", DocumentSpecific},
		{"Explain the typical closing process of a refinance", General},
		{"", DocumentSpecific},
	}

	for _, tt := range tests {
		if got := s.Classify(tt.question); got != tt.expected {
			t.Errorf("Classify(%q) = %v; want %v", tt.question, got, tt.expected)
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	s := NewKeywordStrategy()
	question := "What are current FHA guidelines?"

	first := s.Classify(question)
	for i := 0; i < 10; i++ {
		if got := s.Classify(question); got != first {
			t.Fatalf("classification flapped on identical input: %v then %v", first, got)
		}
	}
}

func TestClassify_CustomKeywords(t *testing.T) {
	s := NewKeywordStrategy("escrow")

	if got := s.Classify("How does escrow work?"); got != General {
		t.Errorf("custom keyword not honored, got %v", got)
	}
	if got := s.Classify("What is the current rate?"); got != DocumentSpecific {
		t.Errorf("builtin keywords should be replaced, got %v", got)
	}
}
