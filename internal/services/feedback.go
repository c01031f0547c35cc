package services

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yerinchoi/lingotalk-backend/internal/clients/aiproxy"
	"github.com/yerinchoi/lingotalk-backend/internal/data/repos"
	types "github.com/yerinchoi/lingotalk-backend/internal/domain"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/ctxutil"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/logger"
)

const defaultTurnScore = 75

// DetailInput is a per-turn feedback draft submitted directly by a client
// that computed the commentary itself.
type DetailInput struct {
	SessionID   string   `json:"session_id"`
	UserMessage string   `json:"user_message"`
	Grammar     string   `json:"grammar_feedback"`
	Vocabulary  string   `json:"vocabulary_feedback"`
	Suggestion  string   `json:"suggestion"`
	Score       *float64 `json:"score"`
	Level       string   `json:"level"`
	Categories  []string `json:"categories"`
}

// FeedbackService persists per-turn feedback drafts and rolls them up into
// dated session reports.
type FeedbackService interface {
	SaveTurnFeedback(ctx context.Context, userID uuid.UUID, sessionID, userMessage string, reply *aiproxy.TurnReply) (*types.FeedbackDetail, error)
	SaveDetail(ctx context.Context, userID uuid.UUID, in DetailInput) (*types.FeedbackDetail, error)
	FinalizeSession(ctx context.Context, userID uuid.UUID, sessionID, topic string) (*types.FeedbackReport, error)
	ReportDates(ctx context.Context, userID uuid.UUID) ([]string, error)
	ReportsByDate(ctx context.Context, userID uuid.UUID, date string) ([]*types.FeedbackReport, error)
	ReportDetails(ctx context.Context, userID, reportID uuid.UUID) (*types.FeedbackReport, []*types.FeedbackDetail, error)
}

type feedbackService struct {
	db         *gorm.DB
	log        *logger.Logger
	detailRepo repos.FeedbackDetailRepo
	reportRepo repos.FeedbackReportRepo
}

func NewFeedbackService(db *gorm.DB, log *logger.Logger, detailRepo repos.FeedbackDetailRepo, reportRepo repos.FeedbackReportRepo) FeedbackService {
	serviceLog := log.With("service", "FeedbackService")
	return &feedbackService{db: db, log: serviceLog, detailRepo: detailRepo, reportRepo: reportRepo}
}

func (fs *feedbackService) SaveTurnFeedback(ctx context.Context, userID uuid.UUID, sessionID, userMessage string, reply *aiproxy.TurnReply) (*types.FeedbackDetail, error) {
	if reply == nil {
		return nil, fmt.Errorf("turn reply required")
	}
	return fs.SaveDetail(ctx, userID, DetailInput{
		SessionID:   sessionID,
		UserMessage: userMessage,
		Grammar:     reply.Grammar,
		Vocabulary:  reply.Vocabulary,
		Suggestion:  reply.Suggestion,
		Score:       reply.Score,
		Categories:  reply.Categories,
	})
}

func (fs *feedbackService) SaveDetail(ctx context.Context, userID uuid.UUID, in DetailInput) (*types.FeedbackDetail, error) {
	ctx = ctxutil.Default(ctx)

	if strings.TrimSpace(in.SessionID) == "" {
		return nil, fmt.Errorf("session id required")
	}

	cats := FlaggedCategories(&aiproxy.TurnReply{
		Grammar:    in.Grammar,
		Vocabulary: in.Vocabulary,
		Suggestion: in.Suggestion,
		Categories: in.Categories,
	})
	if len(cats) == 0 {
		// A clean turn leaves no row behind.
		return nil, nil
	}

	score := ClampScore(in.Score)
	level := strings.TrimSpace(in.Level)
	if level == "" {
		level = TurnLevel(score)
	}
	grammarText, vocabularyText, suggestionText := DetailTexts(cats, in.Grammar, in.Vocabulary, in.Suggestion)
	detail := &types.FeedbackDetail{
		ID:                 uuid.New(),
		UserID:             userID,
		SessionID:          in.SessionID,
		UserMessage:        in.UserMessage,
		GrammarFeedback:    grammarText,
		VocabularyFeedback: vocabularyText,
		Suggestion:         suggestionText,
		Score:              score,
		Level:              level,
		Categories:         types.MarshalCategories(cats),
	}

	var saved *types.FeedbackDetail
	err := fs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := fs.detailRepo.Create(ctx, tx, []*types.FeedbackDetail{detail})
		if err != nil {
			return fmt.Errorf("create feedback detail: %w", err)
		}
		saved = created[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (fs *feedbackService) FinalizeSession(ctx context.Context, userID uuid.UUID, sessionID, topic string) (*types.FeedbackReport, error) {
	ctx = ctxutil.Default(ctx)

	// Cheap pre-check so an empty session never opens the write transaction.
	has, err := fs.detailRepo.HasDraftsBySession(ctx, nil, userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("check session drafts: %w", err)
	}
	if !has {
		return nil, ErrNoDetails
	}

	var report *types.FeedbackReport
	err = fs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		drafts, err := fs.detailRepo.GetDraftsBySession(ctx, tx, userID, sessionID)
		if err != nil {
			return fmt.Errorf("get session drafts: %w", err)
		}
		if len(drafts) == 0 {
			return ErrNoDetails
		}

		avgGrammar, avgVocabulary, avgConversation, avgScore := AggregateScores(drafts)

		candidate := &types.FeedbackReport{
			ID:              uuid.New(),
			UserID:          userID,
			SessionID:       sessionID,
			Date:            time.Now(),
			Topic:           topic,
			AvgGrammar:      avgGrammar,
			AvgVocabulary:   avgVocabulary,
			AvgConversation: avgConversation,
			AvgScore:        avgScore,
		}
		created, err := fs.reportRepo.Create(ctx, tx, candidate)
		if err != nil {
			return fmt.Errorf("create feedback report: %w", err)
		}

		ids := make([]uuid.UUID, 0, len(drafts))
		for _, d := range drafts {
			ids = append(ids, d.ID)
		}
		if err := fs.detailRepo.AssignReportID(ctx, tx, ids, created.ID); err != nil {
			return fmt.Errorf("assign report id: %w", err)
		}
		report = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	fs.log.Info("Session finalized", "session_id", sessionID, "report_id", report.ID, "avg_score", report.AvgScore)
	return report, nil
}

func (fs *feedbackService) ReportDates(ctx context.Context, userID uuid.UUID) ([]string, error) {
	ctx = ctxutil.Default(ctx)

	reports, err := fs.reportRepo.GetByUserIDOrderByDateDesc(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("get reports: %w", err)
	}

	seen := map[string]bool{}
	dates := []string{}
	for _, r := range reports {
		day := r.Date.Format("2006-01-02")
		if !seen[day] {
			seen[day] = true
			dates = append(dates, day)
		}
	}
	return dates, nil
}

func (fs *feedbackService) ReportsByDate(ctx context.Context, userID uuid.UUID, date string) ([]*types.FeedbackReport, error) {
	ctx = ctxutil.Default(ctx)

	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", date)
	}
	dayStart := day
	dayEnd := day.AddDate(0, 0, 1)

	reports, err := fs.reportRepo.GetByUserIDAndDate(ctx, nil, userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("get reports by date: %w", err)
	}
	return reports, nil
}

func (fs *feedbackService) ReportDetails(ctx context.Context, userID, reportID uuid.UUID) (*types.FeedbackReport, []*types.FeedbackDetail, error) {
	ctx = ctxutil.Default(ctx)

	report, err := fs.reportRepo.GetByIDAndUserID(ctx, nil, reportID, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("get report: %w", err)
	}
	if report == nil {
		return nil, nil, ErrNotFound
	}

	details, err := fs.detailRepo.GetByReportID(ctx, nil, userID, reportID)
	if err != nil {
		return nil, nil, fmt.Errorf("get report details: %w", err)
	}
	for _, d := range details {
		if strings.TrimSpace(d.Level) == "" {
			d.Level = ViewerLevel(d.Score)
		}
	}
	return report, details, nil
}

// ---- scoring rules ----

// perfectMarkerRe matches feedback text that only says the turn was fine.
var perfectMarkerRe = regexp.MustCompile(`(?i)완벽|perfect`)

// ClampScore applies the default for a missing score and clamps to [0,100].
func ClampScore(score *float64) int {
	if score == nil {
		return defaultTurnScore
	}
	s := int(math.Round(*score))
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// TurnLevel classifies the per-turn badge shown while chatting.
func TurnLevel(score int) string {
	switch {
	case score >= 92:
		return types.LevelPerfect
	case score <= 74:
		return types.LevelNeeds
	default:
		return types.LevelNeutral
	}
}

// ViewerLevel classifies report rows that were stored without a level.
func ViewerLevel(score int) string {
	switch {
	case score >= 85:
		return types.LevelExcellent
	case score >= 70:
		return types.LevelGood
	default:
		return types.LevelNeedsWork
	}
}

// FlaggedCategories prefers the proxy's explicit category list; otherwise a
// category is flagged when its feedback text is non-empty and is not just a
// perfect marker.
func FlaggedCategories(reply *aiproxy.TurnReply) []types.Category {
	if len(reply.Categories) > 0 {
		out := []types.Category{}
		for _, raw := range reply.Categories {
			c := types.Category(strings.ToUpper(strings.TrimSpace(raw)))
			if types.ValidCategory(c) && !containsCategory(out, c) {
				out = append(out, c)
			}
		}
		return out
	}

	out := []types.Category{}
	if flaggedText(reply.Grammar) {
		out = append(out, types.CategoryGrammar)
	}
	if flaggedText(reply.Vocabulary) {
		out = append(out, types.CategoryVocabulary)
	}
	if flaggedText(reply.Suggestion) {
		out = append(out, types.CategoryConversation)
	}
	return out
}

// DetailTexts nulls each commentary field whose category is not flagged, so a
// stored row never carries text for a category the turn was clean on.
func DetailTexts(cats []types.Category, grammar, vocabulary, suggestion string) (grammarText, vocabularyText, suggestionText *string) {
	if containsCategory(cats, types.CategoryGrammar) {
		grammarText = nilIfBlank(grammar)
	}
	if containsCategory(cats, types.CategoryVocabulary) {
		vocabularyText = nilIfBlank(vocabulary)
	}
	if containsCategory(cats, types.CategoryConversation) {
		suggestionText = nilIfBlank(suggestion)
	}
	return grammarText, vocabularyText, suggestionText
}

// AggregateScores computes the per-category averages over the details flagged
// with each category, and the rounded overall average. Categories with no
// flagged details average to nil.
func AggregateScores(details []*types.FeedbackDetail) (avgGrammar, avgVocabulary, avgConversation *float64, avgScore int) {
	var total int
	sums := map[types.Category]int{}
	counts := map[types.Category]int{}

	for _, d := range details {
		total += d.Score
		for _, c := range d.CategorySet() {
			sums[c] += d.Score
			counts[c]++
		}
	}

	mean := func(c types.Category) *float64 {
		if counts[c] == 0 {
			return nil
		}
		v := math.Round(float64(sums[c])/float64(counts[c])*10) / 10
		return &v
	}

	avgGrammar = mean(types.CategoryGrammar)
	avgVocabulary = mean(types.CategoryVocabulary)
	avgConversation = mean(types.CategoryConversation)
	if len(details) > 0 {
		avgScore = int(math.Round(float64(total) / float64(len(details))))
	}
	return avgGrammar, avgVocabulary, avgConversation, avgScore
}

func flaggedText(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && !perfectMarkerRe.MatchString(s)
}

func containsCategory(cats []types.Category, c types.Category) bool {
	for _, got := range cats {
		if got == c {
			return true
		}
	}
	return false
}

func nilIfBlank(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
