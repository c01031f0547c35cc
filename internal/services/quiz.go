package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yerinchoi/lingotalk-backend/internal/data/repos"
	types "github.com/yerinchoi/lingotalk-backend/internal/domain"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/ctxutil"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/logger"
)

const (
	quizSize        = 10
	quizChoiceCount = 4
)

// QuizQuestionView is a question as served to the UI, with the answer held
// back. The answer only travels through the persisted question row.
type QuizQuestionView struct {
	ID      uuid.UUID `json:"id"`
	Kind    string    `json:"kind"`
	Prompt  string    `json:"prompt"`
	Options []string  `json:"options,omitempty"`
}

type QuizAnswer struct {
	QuestionID uuid.UUID `json:"question_id"`
	Answer     string    `json:"answer"`
}

// QuizResult is a graded attempt, per-question verdicts included.
type QuizResult struct {
	Attempt *types.QuizAttempt `json:"attempt"`
	Graded  []GradedAnswer     `json:"graded"`
}

type GradedAnswer struct {
	QuestionID uuid.UUID `json:"question_id"`
	Correct    bool      `json:"correct"`
	Expected   string    `json:"expected"`
	Given      string    `json:"given"`
}

type QuizService interface {
	BuildQuiz(ctx context.Context, userID uuid.UUID) ([]QuizQuestionView, error)
	SubmitAttempt(ctx context.Context, userID uuid.UUID, answers []QuizAnswer) (*QuizResult, error)
	BestPercent(ctx context.Context, userID uuid.UUID) (int, error)
}

type quizService struct {
	db           *gorm.DB
	log          *logger.Logger
	questionRepo repos.QuizQuestionRepo
	attemptRepo  repos.QuizAttemptRepo
	vocabRepo    repos.VocabRepo
}

func NewQuizService(db *gorm.DB, log *logger.Logger, questionRepo repos.QuizQuestionRepo, attemptRepo repos.QuizAttemptRepo, vocabRepo repos.VocabRepo) QuizService {
	serviceLog := log.With("service", "QuizService")
	return &quizService{db: db, log: serviceLog, questionRepo: questionRepo, attemptRepo: attemptRepo, vocabRepo: vocabRepo}
}

// BuildQuiz generates a quiz from the user's vocabulary list. Words with a
// meaning become multiple-choice meaning questions; the rest become speech
// prompts. Questions are persisted so attempts can be graded server-side.
func (qs *quizService) BuildQuiz(ctx context.Context, userID uuid.UUID) ([]QuizQuestionView, error) {
	ctx = ctxutil.Default(ctx)

	entries, err := qs.vocabRepo.ListByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("list vocabulary: %w", err)
	}
	if len(entries) == 0 {
		return []QuizQuestionView{}, nil
	}

	questions := BuildQuestions(userID, entries, quizSize)
	if len(questions) == 0 {
		return []QuizQuestionView{}, nil
	}

	err = qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := qs.questionRepo.Create(ctx, tx, questions)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("persist quiz questions: %w", err)
	}

	views := make([]QuizQuestionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, QuizQuestionView{
			ID:      q.ID,
			Kind:    q.Kind,
			Prompt:  q.Prompt,
			Options: decodeOptions(q.Options),
		})
	}
	return views, nil
}

func (qs *quizService) SubmitAttempt(ctx context.Context, userID uuid.UUID, answers []QuizAnswer) (*QuizResult, error) {
	ctx = ctxutil.Default(ctx)

	if len(answers) == 0 {
		return nil, fmt.Errorf("answers required")
	}

	ids := make([]uuid.UUID, 0, len(answers))
	for _, a := range answers {
		ids = append(ids, a.QuestionID)
	}
	questions, err := qs.questionRepo.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}
	byID := map[uuid.UUID]*types.QuizQuestion{}
	for _, q := range questions {
		if q.UserID == userID {
			byID[q.ID] = q
		}
	}

	graded := []GradedAnswer{}
	correct := 0
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			return nil, ErrNotFound
		}
		ok = AnswersMatch(q.Answer, a.Answer)
		if ok {
			correct++
		}
		graded = append(graded, GradedAnswer{
			QuestionID: a.QuestionID,
			Correct:    ok,
			Expected:   q.Answer,
			Given:      a.Answer,
		})
	}

	attempt := &types.QuizAttempt{
		ID:      uuid.New(),
		UserID:  userID,
		Score:   correct,
		Total:   len(answers),
		Percent: int(math.Round(float64(correct) / float64(len(answers)) * 100)),
	}
	err = qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := qs.attemptRepo.Create(ctx, tx, attempt)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create attempt: %w", err)
	}

	qs.log.Info("Quiz attempt graded", "user_id", userID, "score", attempt.Score, "total", attempt.Total)
	return &QuizResult{Attempt: attempt, Graded: graded}, nil
}

func (qs *quizService) BestPercent(ctx context.Context, userID uuid.UUID) (int, error) {
	ctx = ctxutil.Default(ctx)

	best, err := qs.attemptRepo.BestPercent(ctx, nil, userID)
	if err != nil {
		return 0, fmt.Errorf("best percent: %w", err)
	}
	return best, nil
}

// BuildQuestions turns vocabulary entries into up to max quiz questions.
// Entries with a meaning become choice questions whose distractors are other
// entries' meanings; entries without one become speech prompts.
func BuildQuestions(userID uuid.UUID, entries []*types.VocabularyEntry, max int) []*types.QuizQuestion {
	meanings := []string{}
	for _, e := range entries {
		if strings.TrimSpace(e.Meaning) != "" {
			meanings = append(meanings, e.Meaning)
		}
	}

	shuffled := make([]*types.VocabularyEntry, len(entries))
	copy(shuffled, entries)
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	questions := []*types.QuizQuestion{}
	for _, e := range shuffled {
		if len(questions) >= max {
			break
		}
		entryID := e.ID
		if strings.TrimSpace(e.Meaning) != "" && len(meanings) >= 2 {
			questions = append(questions, &types.QuizQuestion{
				ID:                uuid.New(),
				UserID:            userID,
				Kind:              types.QuizKindChoice,
				Prompt:            fmt.Sprintf("What does '%s' mean?", e.Word),
				Options:           encodeOptions(buildChoices(e.Meaning, meanings)),
				Answer:            e.Meaning,
				VocabularyEntryID: &entryID,
			})
			continue
		}
		questions = append(questions, &types.QuizQuestion{
			ID:                uuid.New(),
			UserID:            userID,
			Kind:              types.QuizKindSpeech,
			Prompt:            fmt.Sprintf("Say a sentence using '%s'.", e.Word),
			Answer:            e.Word,
			VocabularyEntryID: &entryID,
		})
	}
	return questions
}

// AnswersMatch compares answers case- and whitespace-insensitively. Speech
// answers count as correct when the expected word appears in the utterance.
func AnswersMatch(expected, given string) bool {
	e := strings.ToLower(strings.TrimSpace(expected))
	g := strings.ToLower(strings.TrimSpace(given))
	if e == "" || g == "" {
		return false
	}
	return e == g || strings.Contains(g, e)
}

// buildChoices assembles the option list: the right meaning plus up to three
// distinct distractors, shuffled.
func buildChoices(answer string, meanings []string) []string {
	choices := []string{answer}
	pool := make([]string, 0, len(meanings))
	for _, m := range meanings {
		if m != answer {
			pool = append(pool, m)
		}
	}
	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	for _, m := range pool {
		if len(choices) >= quizChoiceCount {
			break
		}
		choices = append(choices, m)
	}
	rand.Shuffle(len(choices), func(i, j int) { choices[i], choices[j] = choices[j], choices[i] })
	return choices
}

func encodeOptions(options []string) datatypes.JSON {
	raw, err := json.Marshal(options)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}

func decodeOptions(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var options []string
	if err := json.Unmarshal(raw, &options); err != nil {
		return nil
	}
	return options
}
