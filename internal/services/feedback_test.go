package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/yerinchoi/lingotalk-backend/internal/clients/aiproxy"
	types "github.com/yerinchoi/lingotalk-backend/internal/domain"
)

func ptrFloat(v float64) *float64 { return &v }

func TestClampScore(t *testing.T) {
	cases := []struct {
		name  string
		score *float64
		want  int
	}{
		{"missing defaults to 75", nil, 75},
		{"negative clamps to 0", ptrFloat(-10), 0},
		{"over 100 clamps", ptrFloat(130), 100},
		{"rounds", ptrFloat(88.6), 89},
		{"zero stays", ptrFloat(0), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClampScore(tc.score); got != tc.want {
				t.Errorf("ClampScore = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestTurnLevel(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{100, types.LevelPerfect},
		{92, types.LevelPerfect},
		{91, types.LevelNeutral},
		{75, types.LevelNeutral},
		{74, types.LevelNeeds},
		{0, types.LevelNeeds},
	}
	for _, tc := range cases {
		if got := TurnLevel(tc.score); got != tc.want {
			t.Errorf("TurnLevel(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestViewerLevel(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{92, types.LevelExcellent},
		{85, types.LevelExcellent},
		{84, types.LevelGood},
		{70, types.LevelGood},
		{69, types.LevelNeedsWork},
	}
	for _, tc := range cases {
		if got := ViewerLevel(tc.score); got != tc.want {
			t.Errorf("ViewerLevel(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestFlaggedCategoriesExplicit(t *testing.T) {
	reply := &aiproxy.TurnReply{
		Categories: []string{"grammar", "GRAMMAR", "vocabulary", "bogus"},
	}
	got := FlaggedCategories(reply)
	if len(got) != 2 || got[0] != types.CategoryGrammar || got[1] != types.CategoryVocabulary {
		t.Fatalf("FlaggedCategories = %v", got)
	}
}

func TestFlaggedCategoriesFallback(t *testing.T) {
	cases := []struct {
		name  string
		reply aiproxy.TurnReply
		want  []types.Category
	}{
		{
			"grammar issue only",
			aiproxy.TurnReply{Grammar: "verb tense is wrong", Vocabulary: "Perfect!"},
			[]types.Category{types.CategoryGrammar},
		},
		{
			"korean perfect marker not flagged",
			aiproxy.TurnReply{Grammar: "완벽해요!", Vocabulary: "try 'reservation' instead"},
			[]types.Category{types.CategoryVocabulary},
		},
		{
			"suggestion flags conversation",
			aiproxy.TurnReply{Suggestion: "You could ask a follow-up question."},
			[]types.Category{types.CategoryConversation},
		},
		{
			"all clean",
			aiproxy.TurnReply{Grammar: "perfect", Vocabulary: "  ", Suggestion: ""},
			[]types.Category{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FlaggedCategories(&tc.reply)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func detailWith(score int, cats ...types.Category) *types.FeedbackDetail {
	return &types.FeedbackDetail{
		ID:         uuid.New(),
		Score:      score,
		Categories: types.MarshalCategories(cats),
	}
}

func TestAggregateScores(t *testing.T) {
	details := []*types.FeedbackDetail{
		detailWith(80, types.CategoryGrammar),
		detailWith(60, types.CategoryGrammar, types.CategoryVocabulary),
		detailWith(90, types.CategoryConversation),
	}

	g, v, c, avg := AggregateScores(details)

	if g == nil || *g != 70.0 {
		t.Errorf("avg grammar = %v, want 70", g)
	}
	if v == nil || *v != 60.0 {
		t.Errorf("avg vocabulary = %v, want 60", v)
	}
	if c == nil || *c != 90.0 {
		t.Errorf("avg conversation = %v, want 90", c)
	}
	// (80+60+90)/3 = 76.67 rounds to 77
	if avg != 77 {
		t.Errorf("avg score = %d, want 77", avg)
	}
}

func TestAggregateScoresNilForUnflaggedCategory(t *testing.T) {
	details := []*types.FeedbackDetail{
		detailWith(50, types.CategoryGrammar),
	}
	g, v, c, avg := AggregateScores(details)
	if g == nil || *g != 50.0 {
		t.Errorf("avg grammar = %v, want 50", g)
	}
	if v != nil {
		t.Errorf("avg vocabulary = %v, want nil", *v)
	}
	if c != nil {
		t.Errorf("avg conversation = %v, want nil", *c)
	}
	if avg != 50 {
		t.Errorf("avg score = %d, want 50", avg)
	}
}

func TestDetailTextsNullUnlessFlagged(t *testing.T) {
	grammar := "Your grammar is perfect!"
	vocab := "Try 'order' instead of 'want'."

	// Fallback path: the perfect marker keeps grammar unflagged, so its
	// commentary must not be stored.
	cats := FlaggedCategories(&aiproxy.TurnReply{Grammar: grammar, Vocabulary: vocab})
	if len(cats) != 1 || cats[0] != types.CategoryVocabulary {
		t.Fatalf("cats = %v, want [VOCABULARY]", cats)
	}
	g, v, s := DetailTexts(cats, grammar, vocab, "")
	if g != nil {
		t.Errorf("grammar text = %q, want nil for unflagged category", *g)
	}
	if v == nil || *v != vocab {
		t.Errorf("vocabulary text = %v, want %q", v, vocab)
	}
	if s != nil {
		t.Errorf("suggestion text = %v, want nil", s)
	}

	// Explicit category list wins over non-empty commentary.
	g, v, s = DetailTexts([]types.Category{types.CategoryVocabulary}, "Watch the tense.", vocab, "Ask about the menu.")
	if g != nil {
		t.Errorf("grammar text = %q, want nil when only VOCABULARY is flagged", *g)
	}
	if v == nil || *v != vocab {
		t.Errorf("vocabulary text = %v, want %q", v, vocab)
	}
	if s != nil {
		t.Errorf("suggestion text = %q, want nil when only VOCABULARY is flagged", *s)
	}
}
