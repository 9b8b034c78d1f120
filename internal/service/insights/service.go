package insights

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/attune-api/internal/domain"
	"github.com/phrazzld/attune-api/internal/domain/patterns"
	"github.com/phrazzld/attune-api/internal/domain/recommend"
	"github.com/phrazzld/attune-api/internal/platform/logger"
	"github.com/phrazzld/attune-api/internal/platform/metrics"
	"github.com/phrazzld/attune-api/internal/store"
	"golang.org/x/sync/errgroup"
)

// Defaults used when Config leaves a field at zero.
const (
	DefaultRangeDays = 30
	DefaultMaxDays   = 365
)

// Config bounds the analysis range and sets the default time zone.
type Config struct {
	DefaultRangeDays int
	MaxRangeDays     int
	DefaultLocation  *time.Location
}

// LogEmotionInput is a new emotion event. A zero Timestamp means now. A
// non-empty Journal is stored as a journal entry in the same transaction.
type LogEmotionInput struct {
	Emotion   string
	Intensity float64
	Triggers  domain.TriggerValue
	Notes     string
	Journal   string
	Timestamp time.Time
}

// JournalInput is a new journal entry. A zero Timestamp means now.
type JournalInput struct {
	Content   string
	Emotion   string
	Timestamp time.Time
}

// FeedbackInput is a rating of one catalog strategy.
type FeedbackInput struct {
	StrategyID    string
	Effectiveness int
	Emotion       string
}

// PatternQuery scopes an analysis. Zero Start and End select the default
// range ending now. An empty Timezone uses the configured default.
type PatternQuery struct {
	Scope    string
	Start    time.Time
	End      time.Time
	Emotions []string
	Timezone string
}

// LoggedEmotion is the result of LogEmotion. Journal is nil unless one was
// requested.
type LoggedEmotion struct {
	Event   *domain.EmotionEvent
	Journal *domain.JournalEntry
}

// Service provides the emotion, pattern and strategy operations.
type Service interface {
	// LogEmotion records an emotion event and, optionally, a journal entry.
	LogEmotion(ctx context.Context, userID uuid.UUID, in LogEmotionInput) (*LoggedEmotion, error)

	// AddJournalEntry records a free-text journal entry.
	AddJournalEntry(ctx context.Context, userID uuid.UUID, in JournalInput) (*domain.JournalEntry, error)

	// AnalyzePatterns runs the pattern engine over the user's scoped events.
	AnalyzePatterns(ctx context.Context, userID uuid.UUID, q PatternQuery) (*patterns.Analysis, error)

	// RecommendStrategies ranks catalog strategies for the user.
	RecommendStrategies(ctx context.Context, userID uuid.UUID, req recommend.Request) ([]recommend.Recommendation, error)

	// ListStrategies returns the whole catalog.
	ListStrategies(ctx context.Context) []domain.RegulationStrategy

	// GetPreferences returns the user's normalized preferences, or the
	// defaults when none are stored.
	GetPreferences(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error)

	// UpdatePreferences replaces the user's preferences.
	UpdatePreferences(ctx context.Context, userID uuid.UUID, prefs domain.UserPreferences) (*domain.UserPreferences, error)

	// RecordFeedback appends a rating for a catalog strategy.
	RecordFeedback(ctx context.Context, userID uuid.UUID, in FeedbackInput) (*domain.StrategyFeedback, error)
}

// Option configures optional service collaborators.
type Option func(*serviceImpl)

// WithMetrics records engine timings.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *serviceImpl) { s.metrics = m }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *serviceImpl) {
		if now != nil {
			s.now = now
		}
	}
}

// Stores groups the repositories the service depends on.
type Stores struct {
	Emotions    store.EmotionStore
	Journals    store.JournalStore
	Feedback    store.FeedbackStore
	Preferences store.PreferencesStore
}

type serviceImpl struct {
	db      *sql.DB
	stores  Stores
	engine  *recommend.Engine
	cfg     Config
	metrics *metrics.Metrics
	now     func() time.Time
	logger  *slog.Logger
}

var _ Service = (*serviceImpl)(nil)

// NewService creates the insights service. It returns an error if any
// required dependency is nil.
func NewService(
	db *sql.DB,
	stores Stores,
	engine *recommend.Engine,
	cfg Config,
	logger *slog.Logger,
	opts ...Option,
) (Service, error) {
	switch {
	case db == nil:
		return nil, &ServiceError{Operation: "create_service", Message: "db cannot be nil"}
	case stores.Emotions == nil, stores.Journals == nil, stores.Feedback == nil, stores.Preferences == nil:
		return nil, &ServiceError{Operation: "create_service", Message: "stores cannot be nil"}
	case engine == nil:
		return nil, &ServiceError{Operation: "create_service", Message: "engine cannot be nil"}
	}

	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DefaultRangeDays <= 0 {
		cfg.DefaultRangeDays = DefaultRangeDays
	}
	if cfg.MaxRangeDays <= 0 {
		cfg.MaxRangeDays = DefaultMaxDays
	}
	if cfg.DefaultLocation == nil {
		cfg.DefaultLocation = time.UTC
	}

	s := &serviceImpl{
		db:     db,
		stores: stores,
		engine: engine,
		cfg:    cfg,
		now:    time.Now,
		logger: logger.With(slog.String("component", "insights_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// LogEmotion implements Service.LogEmotion
func (s *serviceImpl) LogEmotion(
	ctx context.Context,
	userID uuid.UUID,
	in LogEmotionInput,
) (*LoggedEmotion, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	at := in.Timestamp
	if at.IsZero() {
		at = s.now()
	}

	event, err := domain.NewEmotionEvent(userID, in.Emotion, in.Intensity, in.Triggers, at)
	if err != nil {
		return nil, invalid(err)
	}
	event.Notes = strings.TrimSpace(in.Notes)

	result := &LoggedEmotion{Event: event}
	if strings.TrimSpace(in.Journal) != "" {
		entry, err := domain.NewJournalEntry(userID, in.Journal, event.Emotion, at)
		if err != nil {
			return nil, invalid(err)
		}
		result.Journal = entry
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.stores.Emotions.WithTx(tx).Create(ctx, event); err != nil {
			return err
		}
		if result.Journal != nil {
			return s.stores.Journals.WithTx(tx).Create(ctx, result.Journal)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to log emotion",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("log_emotion", "failed to save emotion event", err)
	}

	log.Info("emotion logged",
		slog.String("event_id", event.ID.String()),
		slog.String("user_id", userID.String()),
		slog.Bool("with_journal", result.Journal != nil))
	return result, nil
}

// AddJournalEntry implements Service.AddJournalEntry
func (s *serviceImpl) AddJournalEntry(
	ctx context.Context,
	userID uuid.UUID,
	in JournalInput,
) (*domain.JournalEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	at := in.Timestamp
	if at.IsZero() {
		at = s.now()
	}

	entry, err := domain.NewJournalEntry(userID, in.Content, in.Emotion, at)
	if err != nil {
		return nil, invalid(err)
	}

	if err := s.stores.Journals.Create(ctx, entry); err != nil {
		log.Error("failed to add journal entry",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("add_journal_entry", "failed to save journal entry", err)
	}

	log.Info("journal entry added",
		slog.String("entry_id", entry.ID.String()),
		slog.String("user_id", userID.String()))
	return entry, nil
}

// AnalyzePatterns implements Service.AnalyzePatterns
func (s *serviceImpl) AnalyzePatterns(
	ctx context.Context,
	userID uuid.UUID,
	q PatternQuery,
) (*patterns.Analysis, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	scope, err := patterns.ParseScope(q.Scope)
	if err != nil {
		return nil, err
	}

	loc, err := s.location(q.Timezone)
	if err != nil {
		return nil, err
	}

	query, err := s.rangeQuery(q.Start, q.End)
	if err != nil {
		return nil, err
	}
	query.Emotions = cleanLabels(q.Emotions)

	var (
		events   []domain.EmotionEvent
		journals []domain.JournalEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = s.stores.Emotions.ListByUser(gctx, userID, query)
		return err
	})
	g.Go(func() error {
		var err error
		journals, err = s.stores.Journals.ListByUser(gctx, userID, query)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to load records for analysis",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("analyze_patterns", "failed to load emotion records", err)
	}

	start := time.Now()
	analysis := patterns.Analyze(events, journals, patterns.Options{Scope: scope, Location: loc})
	s.metrics.ObserveEngine(metrics.EnginePatterns, start, len(events))

	log.Debug("patterns analyzed",
		slog.String("user_id", userID.String()),
		slog.String("scope", string(scope)),
		slog.Int("events", len(events)),
		slog.Int("journals", len(journals)))
	return &analysis, nil
}

// RecommendStrategies implements Service.RecommendStrategies
func (s *serviceImpl) RecommendStrategies(
	ctx context.Context,
	userID uuid.UUID,
	req recommend.Request,
) ([]recommend.Recommendation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, err := s.rangeQuery(time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}

	var (
		events   []domain.EmotionEvent
		feedback []domain.StrategyFeedback
		prefs    domain.UserPreferences
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = s.stores.Emotions.ListByUser(gctx, userID, query)
		return err
	})
	g.Go(func() error {
		var err error
		feedback, err = s.stores.Feedback.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		p, err := s.loadPreferences(gctx, userID)
		if err != nil {
			return err
		}
		prefs = *p
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to load records for recommendations",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("recommend_strategies", "failed to load user records", err)
	}

	start := time.Now()
	recs := s.engine.Recommend(events, feedback, prefs, req)
	s.metrics.ObserveEngine(metrics.EngineRecommend, start, len(recs))

	log.Debug("strategies recommended",
		slog.String("user_id", userID.String()),
		slog.Int("events", len(events)),
		slog.Int("feedback", len(feedback)),
		slog.Int("recommendations", len(recs)))
	return recs, nil
}

// ListStrategies implements Service.ListStrategies
func (s *serviceImpl) ListStrategies(ctx context.Context) []domain.RegulationStrategy {
	return s.engine.Catalog().Strategies()
}

// GetPreferences implements Service.GetPreferences
func (s *serviceImpl) GetPreferences(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error) {
	prefs, err := s.loadPreferences(ctx, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load preferences",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("get_preferences", "failed to load preferences", err)
	}
	return prefs, nil
}

// UpdatePreferences implements Service.UpdatePreferences
// Favorites must name catalog strategies.
func (s *serviceImpl) UpdatePreferences(
	ctx context.Context,
	userID uuid.UUID,
	prefs domain.UserPreferences,
) (*domain.UserPreferences, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	catalog := s.engine.Catalog()
	for _, id := range prefs.FavoriteStrategies {
		if _, ok := catalog.Get(id); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, id)
		}
	}

	prefs.UserID = userID
	prefs.UpdatedAt = s.now().UTC()
	normalized := prefs.Normalized()

	if err := s.stores.Preferences.Upsert(ctx, &normalized); err != nil {
		log.Error("failed to update preferences",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("update_preferences", "failed to save preferences", err)
	}

	log.Info("preferences updated", slog.String("user_id", userID.String()))
	return &normalized, nil
}

// RecordFeedback implements Service.RecordFeedback
func (s *serviceImpl) RecordFeedback(
	ctx context.Context,
	userID uuid.UUID,
	in FeedbackInput,
) (*domain.StrategyFeedback, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	id := strings.TrimSpace(in.StrategyID)
	if _, ok := s.engine.Catalog().Get(id); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, in.StrategyID)
	}

	fb, err := domain.NewStrategyFeedback(userID, id, in.Effectiveness, in.Emotion)
	if err != nil {
		return nil, invalid(err)
	}
	fb.Timestamp = s.now().UTC()

	if err := s.stores.Feedback.Create(ctx, fb); err != nil {
		log.Error("failed to record feedback",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("strategy_id", id))
		return nil, NewServiceError("record_feedback", "failed to save feedback", err)
	}

	log.Info("strategy feedback recorded",
		slog.String("user_id", userID.String()),
		slog.String("strategy_id", id),
		slog.Int("effectiveness", fb.Effectiveness))
	return fb, nil
}

// loadPreferences returns stored preferences normalized, or the defaults.
func (s *serviceImpl) loadPreferences(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error) {
	stored, err := s.stores.Preferences.Get(ctx, userID)
	if errors.Is(err, store.ErrPreferencesNotFound) {
		prefs := domain.DefaultPreferences(userID)
		return &prefs, nil
	}
	if err != nil {
		return nil, err
	}
	prefs := stored.Normalized()
	return &prefs, nil
}

// rangeQuery resolves the requested range against the configured default
// and maximum.
func (s *serviceImpl) rangeQuery(start, end time.Time) (store.EmotionQuery, error) {
	if end.IsZero() {
		end = s.now()
	}
	if start.IsZero() {
		start = end.AddDate(0, 0, -s.cfg.DefaultRangeDays)
	}
	if !start.Before(end) {
		return store.EmotionQuery{}, ErrInvalidRange
	}
	if end.Sub(start) > time.Duration(s.cfg.MaxRangeDays)*24*time.Hour {
		return store.EmotionQuery{}, fmt.Errorf("%w: %d days", ErrRangeTooLarge, s.cfg.MaxRangeDays)
	}
	return store.EmotionQuery{Start: start.UTC(), End: end.UTC()}, nil
}

func (s *serviceImpl) location(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.cfg.DefaultLocation, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}
	return loc, nil
}

// cleanLabels trims labels and drops blanks and duplicates. Case is kept.
func cleanLabels(labels []string) []string {
	if len(labels) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l != "" && !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out
}

// invalid marks a domain constructor error as a validation failure.
func invalid(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrValidation, err)
}
