package aiproxy

import (
	"regexp"
	"strings"
)

// ParsedFeedback is the result of splitting a legacy free-text AI reply into
// the spoken reply and its feedback sections.
type ParsedFeedback struct {
	Found      bool
	Reply      string
	Grammar    string
	Vocabulary string
	Suggestion string
}

var (
	grammarKeyRe    = regexp.MustCompile(`(?i)\bgrammar\b\s*[:\-]`)
	vocabularyKeyRe = regexp.MustCompile(`(?i)\bvocabulary\b\s*[:\-]`)
	suggestionKeyRe = regexp.MustCompile(`(?i)\bsuggestion\b\s*[:\-]`)

	feedbackBlockRe = regexp.MustCompile(`(?is)\[\s*feedback\s*\]`)
	aiReplyBlockRe  = regexp.MustCompile(`(?is)\[\s*ai reply\s*\]`)

	sectionRe = regexp.MustCompile(`(?s)grammar:(.*?)(?:vocabulary:|suggestion:|$)`)
	vocabRe   = regexp.MustCompile(`(?s)vocabulary:(.*?)(?:suggestion:|$)`)
	suggRe    = regexp.MustCompile(`(?s)suggestion:(.*)$`)
)

// normalizeKeys folds case and "Grammar -" style variants onto the lowercase
// "key:" form the section regexes expect.
func normalizeKeys(text string) string {
	text = grammarKeyRe.ReplaceAllString(text, "grammar:")
	text = vocabularyKeyRe.ReplaceAllString(text, "vocabulary:")
	text = suggestionKeyRe.ReplaceAllString(text, "suggestion:")
	return text
}

// ParseFeedbackText splits a legacy reply of the shape
//
//	[AI Reply] ... [Feedback] grammar: ... vocabulary: ... suggestion: ...
//
// into its parts. Found is false when the text carries no feedback block, in
// which case the whole text is the reply.
func ParseFeedbackText(text string) ParsedFeedback {
	out := ParsedFeedback{Reply: strings.TrimSpace(text)}

	normalized := normalizeKeys(text)

	replyPart := normalized
	feedbackPart := ""
	if loc := feedbackBlockRe.FindStringIndex(normalized); loc != nil {
		replyPart = normalized[:loc[0]]
		feedbackPart = normalized[loc[1]:]
	} else if grammarKeyRe.MatchString(text) || vocabularyKeyRe.MatchString(text) {
		// No [Feedback] marker but keyed sections present: split at the first key.
		if idx := strings.Index(normalized, "grammar:"); idx >= 0 {
			replyPart = normalized[:idx]
			feedbackPart = normalized[idx:]
		} else if idx := strings.Index(normalized, "vocabulary:"); idx >= 0 {
			replyPart = normalized[:idx]
			feedbackPart = normalized[idx:]
		}
	}
	if feedbackPart == "" {
		return out
	}

	replyPart = aiReplyBlockRe.ReplaceAllString(replyPart, "")
	out.Found = true
	out.Reply = strings.TrimSpace(replyPart)

	if m := sectionRe.FindStringSubmatch(feedbackPart); m != nil {
		out.Grammar = strings.TrimSpace(m[1])
	}
	if m := vocabRe.FindStringSubmatch(feedbackPart); m != nil {
		out.Vocabulary = strings.TrimSpace(m[1])
	}
	if m := suggRe.FindStringSubmatch(feedbackPart); m != nil {
		out.Suggestion = strings.TrimSpace(m[1])
	}
	return out
}

var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(
		"is are am the a an to of in on at and or but be been being " +
			"was were do does did have has had i you he she it we they " +
			"me him her them my your his its our their this that these those " +
			"for with as by from about into over after before between up down") {
		stopwords[w] = struct{}{}
	}
}

// lemma applies a few conservative rule-based reductions so "studied" and
// "studies" queue the same vocabulary word.
func lemma(word string) string {
	w := strings.ToLower(word)
	switch {
	case strings.HasSuffix(w, "ies") && len(w) > 4:
		return strings.TrimSuffix(w, "ies") + "y"
	case strings.HasSuffix(w, "ied") && len(w) > 4:
		return strings.TrimSuffix(w, "ied") + "y"
	case strings.HasSuffix(w, "es") && len(w) > 4 && hasSibilantStem(strings.TrimSuffix(w, "es")):
		return strings.TrimSuffix(w, "es")
	case strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") && len(w) > 3:
		return strings.TrimSuffix(w, "s")
	case strings.HasSuffix(w, "ed") && len(w) > 4:
		return strings.TrimSuffix(w, "ed")
	case strings.HasSuffix(w, "ing") && len(w) > 5:
		base := strings.TrimSuffix(w, "ing")
		if len(base) > 2 && base[len(base)-1] == base[len(base)-2] {
			base = base[:len(base)-1]
		}
		return base
	}
	return w
}

func hasSibilantStem(stem string) bool {
	return strings.HasSuffix(stem, "s") || strings.HasSuffix(stem, "x") ||
		strings.HasSuffix(stem, "z") || strings.HasSuffix(stem, "ch") ||
		strings.HasSuffix(stem, "sh")
}

var wordGlossRe = regexp.MustCompile(`\b([A-Za-z][A-Za-z\-]+)\b(?:\s*[(\-:]\s*([가-힣 ,/]+)\)?)?`)
var properNounRe = regexp.MustCompile(`^[A-Z][a-z]+$`)

// ExtractVocaSuggestions mines the vocabulary commentary for "word (한국어 뜻)"
// entries, using the suggestion sentence as an example when it contains the
// word. Function words and likely proper nouns are skipped.
func ExtractVocaSuggestions(vocabText, suggestion, userMessage string) []VocaSuggestion {
	var entries []VocaSuggestion
	seen := map[string]int{}

	for _, m := range wordGlossRe.FindAllStringSubmatch(vocabText, -1) {
		raw := m[1]
		gloss := strings.TrimSpace(m[2])

		if _, stop := stopwords[strings.ToLower(raw)]; stop {
			continue
		}
		if properNounRe.MatchString(raw) {
			continue
		}
		word := lemma(raw)
		if word == "" {
			continue
		}
		if _, stop := stopwords[word]; stop {
			continue
		}

		var example *string
		if suggestion != "" && containsWord(suggestion, word) {
			s := strings.TrimSpace(suggestion)
			example = &s
		}

		if idx, dup := seen[word]; dup {
			if entries[idx].Example == nil && example != nil {
				entries[idx].Example = example
			}
			if entries[idx].MeaningKo == nil && gloss != "" {
				entries[idx].MeaningKo = &gloss
			}
			continue
		}

		entry := VocaSuggestion{Word: word, Example: example}
		if gloss != "" {
			entry.MeaningKo = &gloss
		}
		seen[word] = len(entries)
		entries = append(entries, entry)
	}

	return entries
}

func containsWord(text, word string) bool {
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}
