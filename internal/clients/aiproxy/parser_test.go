package aiproxy

import (
	"testing"
)

func TestParseFeedbackTextSplitsSections(t *testing.T) {
	text := "[AI Reply]\nOf course, one pasta coming up!\n" +
		"[Feedback]\nGrammar: Use 'could I have' for polite requests.\n" +
		"Vocabulary - Try 'order (주문하다)' instead of 'want'.\n" +
		"Suggestion: Could I order the pasta, please?"

	got := ParseFeedbackText(text)
	if !got.Found {
		t.Fatalf("expected feedback block to be found")
	}
	if got.Reply != "Of course, one pasta coming up!" {
		t.Fatalf("reply: %q", got.Reply)
	}
	if got.Grammar != "Use 'could I have' for polite requests." {
		t.Fatalf("grammar: %q", got.Grammar)
	}
	if got.Vocabulary == "" || got.Suggestion == "" {
		t.Fatalf("vocabulary/suggestion not parsed: %+v", got)
	}
	if got.Suggestion != "Could I order the pasta, please?" {
		t.Fatalf("suggestion: %q", got.Suggestion)
	}
}

func TestParseFeedbackTextNoBlock(t *testing.T) {
	got := ParseFeedbackText("Hello! What would you like to eat today?")
	if got.Found {
		t.Fatalf("expected no feedback block")
	}
	if got.Reply != "Hello! What would you like to eat today?" {
		t.Fatalf("reply: %q", got.Reply)
	}
}

func TestParseFeedbackTextKeyedSectionsWithoutMarker(t *testing.T) {
	text := "Sure!\ngrammar: minor article slip.\nsuggestion: I would like a table."
	got := ParseFeedbackText(text)
	if !got.Found {
		t.Fatalf("expected keyed sections to be detected")
	}
	if got.Reply != "Sure!" {
		t.Fatalf("reply: %q", got.Reply)
	}
	if got.Grammar != "minor article slip." {
		t.Fatalf("grammar: %q", got.Grammar)
	}
}

func TestLemma(t *testing.T) {
	cases := map[string]string{
		"studies": "study",
		"studied": "study",
		"boxes":   "box",
		"watches": "watch",
		"cats":    "cat",
		"worked":  "work",
		"running": "run",
		"glass":   "glass",
		"order":   "order",
	}
	for in, want := range cases {
		if got := lemma(in); got != want {
			t.Errorf("lemma(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExtractVocaSuggestions(t *testing.T) {
	vocabText := "Try order (주문하다) instead of want."
	suggestion := "Could I order the pasta, please?"

	entries := ExtractVocaSuggestions(vocabText, suggestion, "I want pasta please")

	var found *VocaSuggestion
	for i := range entries {
		if entries[i].Word == "order" {
			found = &entries[i]
		}
	}
	if found == nil {
		t.Fatalf("expected an entry for 'order', got %+v", entries)
	}
	if found.MeaningKo == nil || *found.MeaningKo != "주문하다" {
		t.Fatalf("meaning: %+v", found.MeaningKo)
	}
	if found.Example == nil || *found.Example != suggestion {
		t.Fatalf("example: %+v", found.Example)
	}

	// Function words never become suggestions.
	for _, e := range entries {
		if _, stop := stopwords[e.Word]; stop {
			t.Fatalf("stopword leaked into suggestions: %q", e.Word)
		}
	}
}
