package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yerinchoi/lingotalk-backend/internal/data/repos"
	types "github.com/yerinchoi/lingotalk-backend/internal/domain"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/ctxutil"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/logger"
)

// VocabCandidate is one word offered for the user's word list, either typed
// in by hand or suggested by the AI during a session.
type VocabCandidate struct {
	Word    string  `json:"word"`
	Meaning string  `json:"meaning"`
	Example *string `json:"example,omitempty"`
	Source  string  `json:"source"`
}

// VocabUpdate carries the mutable fields of an entry; nil means unchanged.
type VocabUpdate struct {
	Meaning *string `json:"meaning,omitempty"`
	Example *string `json:"example,omitempty"`
	Known   *bool   `json:"known,omitempty"`
}

type VocabService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*types.VocabularyEntry, error)
	Create(ctx context.Context, userID uuid.UUID, cand VocabCandidate) (*types.VocabularyEntry, error)
	Update(ctx context.Context, userID, entryID uuid.UUID, update VocabUpdate) (*types.VocabularyEntry, error)
	Delete(ctx context.Context, userID, entryID uuid.UUID) error
	BulkMerge(ctx context.Context, userID uuid.UUID, cands []VocabCandidate) ([]*types.VocabularyEntry, error)
}

type vocabService struct {
	db        *gorm.DB
	log       *logger.Logger
	vocabRepo repos.VocabRepo
}

func NewVocabService(db *gorm.DB, log *logger.Logger, vocabRepo repos.VocabRepo) VocabService {
	serviceLog := log.With("service", "VocabService")
	return &vocabService{db: db, log: serviceLog, vocabRepo: vocabRepo}
}

func (vs *vocabService) List(ctx context.Context, userID uuid.UUID) ([]*types.VocabularyEntry, error) {
	ctx = ctxutil.Default(ctx)
	entries, err := vs.vocabRepo.ListByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("list vocabulary: %w", err)
	}
	return entries, nil
}

func (vs *vocabService) Create(ctx context.Context, userID uuid.UUID, cand VocabCandidate) (*types.VocabularyEntry, error) {
	ctx = ctxutil.Default(ctx)

	entry, err := newEntry(userID, cand)
	if err != nil {
		return nil, err
	}

	var created *types.VocabularyEntry
	err = vs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := vs.vocabRepo.WordKeyExists(ctx, tx, userID, entry.WordKey)
		if err != nil {
			return fmt.Errorf("check word key: %w", err)
		}
		if exists {
			return ErrDuplicateWord
		}
		out, err := vs.vocabRepo.Create(ctx, tx, []*types.VocabularyEntry{entry})
		if err != nil {
			return fmt.Errorf("create vocabulary entry: %w", err)
		}
		created = out[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (vs *vocabService) Update(ctx context.Context, userID, entryID uuid.UUID, update VocabUpdate) (*types.VocabularyEntry, error) {
	ctx = ctxutil.Default(ctx)

	entry, err := vs.vocabRepo.GetByIDAndUserID(ctx, nil, entryID, userID)
	if err != nil {
		return nil, fmt.Errorf("get vocabulary entry: %w", err)
	}
	if entry == nil {
		return nil, ErrNotFound
	}

	fields := map[string]any{}
	if update.Meaning != nil {
		entry.Meaning = strings.TrimSpace(*update.Meaning)
		fields["meaning"] = entry.Meaning
	}
	if update.Example != nil {
		entry.Example = update.Example
		fields["example"] = update.Example
	}
	if update.Known != nil {
		entry.Known = *update.Known
		fields["known"] = *update.Known
	}
	if len(fields) == 0 {
		return entry, nil
	}

	err = vs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return vs.vocabRepo.UpdateFields(ctx, tx, entryID, fields)
	})
	if err != nil {
		return nil, fmt.Errorf("update vocabulary entry: %w", err)
	}
	return entry, nil
}

func (vs *vocabService) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	ctx = ctxutil.Default(ctx)

	entry, err := vs.vocabRepo.GetByIDAndUserID(ctx, nil, entryID, userID)
	if err != nil {
		return fmt.Errorf("get vocabulary entry: %w", err)
	}
	if entry == nil {
		return ErrNotFound
	}
	return vs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return vs.vocabRepo.Delete(ctx, tx, entryID)
	})
}

// BulkMerge upserts a batch of candidates. New words are inserted; for words
// the user already has, non-empty incoming fields fill gaps but never
// overwrite existing non-empty values.
func (vs *vocabService) BulkMerge(ctx context.Context, userID uuid.UUID, cands []VocabCandidate) ([]*types.VocabularyEntry, error) {
	ctx = ctxutil.Default(ctx)

	// Dedup candidates by word key, first occurrence wins but later
	// occurrences may fill missing meaning or example.
	keys := []string{}
	byKey := map[string]VocabCandidate{}
	for _, cand := range cands {
		key := types.NormalizeWordKey(cand.Word)
		if key == "" {
			continue
		}
		if existing, ok := byKey[key]; ok {
			byKey[key] = mergeCandidates(existing, cand)
			continue
		}
		byKey[key] = cand
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return []*types.VocabularyEntry{}, nil
	}

	var touched []*types.VocabularyEntry
	err := vs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := vs.vocabRepo.GetByWordKeys(ctx, tx, userID, keys)
		if err != nil {
			return fmt.Errorf("get existing entries: %w", err)
		}
		existingByKey := map[string]*types.VocabularyEntry{}
		for _, e := range existing {
			existingByKey[e.WordKey] = e
		}

		var toCreate []*types.VocabularyEntry
		for _, key := range keys {
			cand := byKey[key]
			entry, ok := existingByKey[key]
			if !ok {
				fresh, err := newEntry(userID, cand)
				if err != nil {
					continue
				}
				toCreate = append(toCreate, fresh)
				continue
			}

			fields := mergeFields(entry, cand)
			if len(fields) > 0 {
				if err := vs.vocabRepo.UpdateFields(ctx, tx, entry.ID, fields); err != nil {
					return fmt.Errorf("merge entry %s: %w", entry.ID, err)
				}
			}
			touched = append(touched, entry)
		}

		if len(toCreate) > 0 {
			created, err := vs.vocabRepo.Create(ctx, tx, toCreate)
			if err != nil {
				return fmt.Errorf("create merged entries: %w", err)
			}
			touched = append(touched, created...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return touched, nil
}

func newEntry(userID uuid.UUID, cand VocabCandidate) (*types.VocabularyEntry, error) {
	word := strings.TrimSpace(cand.Word)
	if word == "" {
		return nil, fmt.Errorf("word required")
	}
	source := cand.Source
	if source != types.VocabSourceSuggested {
		source = types.VocabSourceManual
	}
	return &types.VocabularyEntry{
		ID:      uuid.New(),
		UserID:  userID,
		Word:    word,
		WordKey: types.NormalizeWordKey(word),
		Meaning: strings.TrimSpace(cand.Meaning),
		Example: cand.Example,
		Source:  source,
	}, nil
}

// mergeFields computes the fill-the-gaps update for an existing entry. An
// existing non-empty value always wins over the candidate's.
func mergeFields(entry *types.VocabularyEntry, cand VocabCandidate) map[string]any {
	fields := map[string]any{}
	if entry.Meaning == "" && strings.TrimSpace(cand.Meaning) != "" {
		entry.Meaning = strings.TrimSpace(cand.Meaning)
		fields["meaning"] = entry.Meaning
	}
	if entry.Example == nil && cand.Example != nil && strings.TrimSpace(*cand.Example) != "" {
		entry.Example = cand.Example
		fields["example"] = cand.Example
	}
	return fields
}

func mergeCandidates(a, b VocabCandidate) VocabCandidate {
	if strings.TrimSpace(a.Meaning) == "" {
		a.Meaning = b.Meaning
	}
	if a.Example == nil {
		a.Example = b.Example
	}
	return a
}
