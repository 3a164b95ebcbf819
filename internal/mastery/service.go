package mastery

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/bkt/internal/bkt"
	"github.com/abhisek/bkt/internal/config"
	"github.com/abhisek/bkt/internal/skills"
	"github.com/abhisek/bkt/internal/store"
)

// Store is the storage the service runs against. *store.Store satisfies it.
type Store interface {
	WithTx(ctx context.Context, fn func(tx *store.Tx) error) error
	States() store.StateRepo
	Skills() store.SkillRepo
	Events() store.EventRepo
}

// Service records answers and reports mastery, running the BKT update
// between a state fetch and an upsert.
type Service struct {
	store  Store
	model  config.ModelConfig
	strict bool
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithStrictSkills maps observed skill ids onto the catalog.
func WithStrictSkills(strict bool) Option {
	return func(s *Service) { s.strict = strict }
}

// NewService creates a mastery service.
func NewService(st Store, model config.ModelConfig, opts ...Option) *Service {
	s := &Service{
		store:  st,
		model:  model,
		logger: zap.NewNop(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordAnswer applies one observation to the learner's state for the
// skill and logs it. The fetch, update and log happen in one transaction.
func (s *Service) RecordAnswer(ctx context.Context, obs Observation) (*bkt.Result, error) {
	obs.UserID = strings.TrimSpace(obs.UserID)
	obs.SkillID = strings.TrimSpace(obs.SkillID)
	if s.strict {
		obs.SkillID = skills.Normalize(obs.SkillID)
	}
	if obs.UserID == "" || obs.SkillID == "" {
		return nil, fmt.Errorf("%w: user id and skill id are required", ErrInvalidObservation)
	}

	var (
		res   bkt.Result
		found bool
	)
	err := s.store.WithTx(ctx, func(tx *store.Tx) error {
		st, ok, err := tx.States().FetchOrDefault(ctx, obs.UserID, obs.SkillID, s.model.Prior, s.model.Params)
		if err != nil {
			return fmt.Errorf("fetch state: %w", err)
		}
		found = ok

		res = bkt.Estimate(st.PKnown, st.Params, obs.Correct)

		st.PKnown = res.New
		st.UpdatedAt = s.now()
		if err := tx.States().Upsert(ctx, st); err != nil {
			return fmt.Errorf("save state: %w", err)
		}

		_, err = tx.Events().AppendAnswer(ctx, store.AnswerEventData{
			UserID:       obs.UserID,
			SkillID:      obs.SkillID,
			LessonID:     obs.LessonID,
			QuestionID:   obs.QuestionID,
			Correct:      obs.Correct,
			PKnownBefore: res.Old,
			PKnownAfter:  res.New,
		})
		if err != nil {
			return fmt.Errorf("log answer: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record answer: %w", err)
	}

	s.logger.Info("answer recorded",
		zap.String("user_id", obs.UserID),
		zap.String("skill_id", obs.SkillID),
		zap.Bool("correct", obs.Correct),
		zap.Bool("new_state", !found),
		zap.Float64("p_old", res.Old),
		zap.Float64("p_new", res.New),
	)

	return &res, nil
}

// Mastery returns skill id to p_known for every skill the user has state for.
func (s *Service) Mastery(ctx context.Context, userID string) (map[string]float64, error) {
	states, err := s.store.States().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list mastery: %w", err)
	}
	out := make(map[string]float64, len(states))
	for _, st := range states {
		out[st.SkillID] = st.PKnown
	}
	return out, nil
}

// FullMastery returns the user's mastery rows ordered by skill id, with the
// skill description when one is known.
func (s *Service) FullMastery(ctx context.Context, userID string) ([]SkillMastery, error) {
	states, err := s.store.States().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list mastery: %w", err)
	}
	descs, err := s.store.Skills().Descriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load descriptions: %w", err)
	}

	out := make([]SkillMastery, 0, len(states))
	for _, st := range states {
		row := SkillMastery{
			SkillID:   st.SkillID,
			PKnown:    st.PKnown,
			Level:     LevelFor(st.PKnown),
			UpdatedAt: st.UpdatedAt,
		}
		if d, ok := descs[st.SkillID]; ok {
			row.Description = &d
		} else if sk, err := skills.Get(st.SkillID); err == nil {
			d := sk.Description
			row.Description = &d
		}
		out = append(out, row)
	}
	return out, nil
}

// DefaultWeakest is how many skills WeakestSkills targets by default.
const DefaultWeakest = 3

// WeakestSkills returns up to n of the user's skills with the lowest
// p_known, weakest first. Ties are broken by skill id.
func (s *Service) WeakestSkills(ctx context.Context, userID string, n int) ([]SkillMastery, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: n must be positive, got %d", ErrInvalidObservation, n)
	}

	rows, err := s.FullMastery(ctx, userID)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(rows, func(a, b SkillMastery) int {
		if c := cmp.Compare(a.PKnown, b.PKnown); c != 0 {
			return c
		}
		return strings.Compare(a.SkillID, b.SkillID)
	})
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows, nil
}

// Seed makes sure the catalog skills exist and creates states at
// initialPKnown for the catalog skills the user has none for. Existing
// states are untouched. Returns how many states were created.
func (s *Service) Seed(ctx context.Context, userID string, initialPKnown float64) (int, error) {
	if err := s.checkSeedArgs(userID, initialPKnown); err != nil {
		return 0, err
	}

	var seeded int
	err := s.store.WithTx(ctx, func(tx *store.Tx) error {
		if err := tx.Skills().UpsertSkills(ctx, catalogRows()); err != nil {
			return err
		}
		n, err := tx.States().InsertMissing(ctx, userID, skills.IDs(), initialPKnown, s.model.Params)
		seeded = n
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("seed mastery: %w", err)
	}

	s.logger.Info("user seeded", zap.String("user_id", userID), zap.Int("seeded", seeded))
	return seeded, nil
}

// Bootstrap makes sure the catalog skills exist and sets every catalog
// state of the user to pKnown with default parameters, overwriting what was
// there. Returns the skill ids written.
func (s *Service) Bootstrap(ctx context.Context, userID string, pKnown float64) ([]string, error) {
	if err := s.checkSeedArgs(userID, pKnown); err != nil {
		return nil, err
	}

	ids := skills.IDs()
	err := s.store.WithTx(ctx, func(tx *store.Tx) error {
		if err := tx.Skills().UpsertSkills(ctx, catalogRows()); err != nil {
			return err
		}
		return tx.States().UpsertAll(ctx, userID, ids, pKnown, s.model.Params)
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrap mastery: %w", err)
	}

	s.logger.Info("user bootstrapped", zap.String("user_id", userID), zap.Int("skills", len(ids)))
	return ids, nil
}

// History returns the user's most recent answers, newest first. An empty
// skillID covers every skill; limit 0 means no limit.
func (s *Service) History(ctx context.Context, userID, skillID string, limit int) ([]store.AnswerEvent, error) {
	events, err := s.store.Events().QueryAnswers(ctx, userID, skillID, store.QueryOpts{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("answer history: %w", err)
	}
	return events, nil
}

// Accuracy returns the observed share of correct answers over the last
// lastN answers for the pair, and the number of answers it covers.
func (s *Service) Accuracy(ctx context.Context, userID, skillID string, lastN int) (float64, int, error) {
	return s.store.Events().SkillAccuracy(ctx, userID, skillID, lastN)
}

func (s *Service) checkSeedArgs(userID string, pKnown float64) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidObservation)
	}
	return bkt.ValidateProbability("p_known", pKnown)
}

func catalogRows() []store.SkillRow {
	all := skills.All()
	rows := make([]store.SkillRow, len(all))
	for i, sk := range all {
		rows[i] = store.SkillRow{ID: sk.ID, Description: sk.Description}
	}
	return rows
}
