package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/furnifind/backend/internal/domain"
	"github.com/furnifind/backend/pkg/logger"
)

// Analysis outcomes reported to the observer
const (
	OutcomeCompleted  = "completed"
	OutcomeFailed     = "failed"
	OutcomeSuperseded = "superseded"
	OutcomeRejected   = "rejected"
	OutcomeCancelled  = "cancelled"
)

// subscriberBuffer bounds how far a progress subscriber may fall behind
// the live stream, on top of the events replayed to it
const subscriberBuffer = 32

// DefaultLiveSweepInterval is how often runtimes of expired sessions are dropped
const DefaultLiveSweepInterval = time.Minute

// AnalysisObserver receives analysis lifecycle notifications (metrics)
type AnalysisObserver interface {
	AnalysisStarted()
	AnalysisFinished(outcome string, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) AnalysisStarted()                       {}
func (nopObserver) AnalysisFinished(string, time.Duration) {}

// SessionServiceConfig holds configuration for the session service
type SessionServiceConfig struct {
	SessionTTL         time.Duration
	PriceDebounce      time.Duration
	LiveSweepInterval  time.Duration
	EnableDebugLogging bool
	Observer           AnalysisObserver
}

// SessionService owns every visitor session: filter criteria, the current
// analysis, the in-flight analysis run and the pending price commit.
// Within one session only the most recently started analysis may write.
type SessionService struct {
	store              domain.SessionRepository
	catalog            domain.CatalogRepository
	analyzer           *Analyzer
	matcher            *MatchingService
	ttl                time.Duration
	debounce           time.Duration
	enableDebugLogging bool
	observer           AnalysisObserver

	rootCtx    context.Context
	rootCancel context.CancelFunc

	mu   sync.Mutex
	live map[string]*liveSession
}

// liveSession is the in-process runtime of a session; the persisted part
// lives in the SessionRepository.
type liveSession struct {
	mu          sync.Mutex
	gen         uint64
	epoch       uint64 // bumped by ClearFilters; stale price commits are dropped
	cancel      context.CancelFunc
	analysisID  string
	startedAt   time.Time
	progress    []domain.AnalysisEvent
	terminal    *domain.AnalysisEvent
	subscribers map[int]chan domain.AnalysisEvent
	nextSub     int
	price       *Debouncer[pendingPrice]
}

// pendingPrice is a price range waiting out the debounce interval, tagged
// with the criteria epoch it was set in
type pendingPrice struct {
	priceRange domain.PriceRange
	epoch      uint64
}

// NewSessionService creates a session service with dependencies
func NewSessionService(
	store domain.SessionRepository,
	catalog domain.CatalogRepository,
	analyzer *Analyzer,
	matcher *MatchingService,
	config SessionServiceConfig,
) *SessionService {
	ttl := config.SessionTTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}

	observer := config.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	sweepInterval := config.LiveSweepInterval
	if sweepInterval <= 0 {
		sweepInterval = DefaultLiveSweepInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	ctx = log.Logger.With().Str("component", "session").Logger().WithContext(ctx)

	s := &SessionService{
		store:              store,
		catalog:            catalog,
		analyzer:           analyzer,
		matcher:            matcher,
		ttl:                ttl,
		debounce:           config.PriceDebounce,
		enableDebugLogging: config.EnableDebugLogging,
		observer:           observer,
		rootCtx:            ctx,
		rootCancel:         cancel,
		live:               make(map[string]*liveSession),
	}
	go s.sweepLoop(sweepInterval)
	return s
}

// Create starts a session with default criteria
func (s *SessionService) Create(ctx context.Context) (*domain.SessionState, error) {
	state := &domain.SessionState{
		ID:        uuid.NewString(),
		Criteria:  domain.DefaultCriteria(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := s.store.Save(ctx, state, s.ttl); err != nil {
		return nil, fmt.Errorf("saving new session: %w", err)
	}

	logger.Info(ctx).Str("session_id", state.ID).Msg("session created")
	return state, nil
}

// Get returns the persisted state of a session
func (s *SessionService) Get(ctx context.Context, id string) (*domain.SessionState, error) {
	state, err := s.load(ctx, id)
	if errors.Is(err, domain.ErrSessionNotFound) {
		s.dropLive(id)
	}
	return state, err
}

// load reads the stored state without touching the live runtime, so it is
// safe to call while holding a session lock
func (s *SessionService) load(ctx context.Context, id string) (*domain.SessionState, error) {
	state, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return state, nil
}

// Delete ends a session, cancelling its analysis and pending price commit
func (s *SessionService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	s.dropLive(id)
	return s.store.Delete(ctx, id)
}

// StartAnalysis validates the upload and, if valid, supersedes any analysis
// still running for the session. Validation errors are returned before any
// state changes.
func (s *SessionService) StartAnalysis(ctx context.Context, id string, upload *domain.Upload) (string, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return "", err
	}

	if err := s.analyzer.Validate(upload); err != nil {
		s.observer.AnalysisFinished(OutcomeRejected, 0)
		return "", err
	}

	ls := s.liveFor(id)
	analysisID := uuid.NewString()

	ls.mu.Lock()
	if ls.cancel != nil {
		ls.cancel()
		s.observer.AnalysisFinished(OutcomeSuperseded, time.Since(ls.startedAt))
		logger.Info(ctx).
			Str("session_id", id).
			Str("analysis_id", ls.analysisID).
			Msg("analysis superseded")
	}
	ls.gen++
	gen := ls.gen
	runCtx, cancel := context.WithCancel(s.rootCtx)
	runCtx = zerolog.Ctx(s.rootCtx).With().
		Str("session_id", id).
		Str("analysis_id", analysisID).
		Logger().WithContext(runCtx)
	ls.progress = nil
	ls.terminal = nil

	events, err := s.analyzer.Analyze(runCtx, upload)
	if err != nil {
		cancel()
		ls.cancel = nil
		ls.mu.Unlock()
		return "", err
	}

	ls.cancel = cancel
	ls.analysisID = analysisID
	ls.startedAt = time.Now()
	s.observer.AnalysisStarted()
	ls.mu.Unlock()

	logger.Info(ctx).
		Str("session_id", id).
		Str("analysis_id", analysisID).
		Str("filename", upload.Filename).
		Int64("size", upload.Size).
		Msg("analysis started")

	go s.consume(runCtx, id, ls, gen, analysisID, events)
	return analysisID, nil
}

// consume forwards events of one run while it is still the current one
func (s *SessionService) consume(ctx context.Context, id string, ls *liveSession, gen uint64, analysisID string, events <-chan domain.AnalysisEvent) {
	for ev := range events {
		ev.AnalysisID = analysisID

		ls.mu.Lock()
		if ls.gen != gen {
			ls.mu.Unlock()
			continue
		}

		if ev.Result != nil {
			if err := s.commitAnalysis(ctx, id, analysisID, ev.Result); err != nil {
				logger.Error(ctx).Err(err).Msg("failed to store analysis result")
				ev = domain.AnalysisEvent{AnalysisID: analysisID, Err: &domain.ProcessingError{Reason: "storing result", Err: err}}
			}
		}

		if ev.Terminal() {
			terminal := ev
			ls.terminal = &terminal
			if ls.cancel != nil {
				ls.cancel()
				ls.cancel = nil
			}
			outcome := OutcomeCompleted
			if ev.Err != nil {
				outcome = OutcomeFailed
			}
			s.observer.AnalysisFinished(outcome, time.Since(ls.startedAt))
		} else {
			ls.progress = append(ls.progress, ev)
		}

		ls.publish(ev)
		ls.mu.Unlock()

		if s.enableDebugLogging && ev.Stage != nil {
			logger.Debug(ctx).Int("progress", ev.Stage.Progress).Str("stage", ev.Stage.Message).Msg("analysis stage")
		}
	}
}

// commitAnalysis stores the result as current and seeds the category filter
func (s *SessionService) commitAnalysis(ctx context.Context, id, analysisID string, result *domain.AnalysisResult) error {
	state, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	state.Analysis = result
	state.AnalysisID = analysisID
	state.Criteria.Category = result.Category

	logger.Info(ctx).
		Str("detected", result.Detected).
		Str("category", string(result.Category)).
		Float64("confidence", result.Confidence).
		Msg("analysis complete")

	return s.save(ctx, state)
}

// Subscribe streams the events of the session's analyses. Events of the
// current analysis that already happened are replayed first, in order.
func (s *SessionService) Subscribe(ctx context.Context, id string) (<-chan domain.AnalysisEvent, func(), error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, nil, err
	}

	ls := s.liveFor(id)

	ls.mu.Lock()
	defer ls.mu.Unlock()

	// room for the whole replay, so it never blocks while ls.mu is held
	ch := make(chan domain.AnalysisEvent, len(ls.progress)+1+subscriberBuffer)

	for _, ev := range ls.progress {
		ch <- ev
	}
	if ls.terminal != nil {
		ch <- *ls.terminal
	}

	if ls.subscribers == nil {
		ls.subscribers = make(map[int]chan domain.AnalysisEvent)
	}
	key := ls.nextSub
	ls.nextSub++
	ls.subscribers[key] = ch

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			ls.mu.Lock()
			defer ls.mu.Unlock()
			if sub, ok := ls.subscribers[key]; ok {
				delete(ls.subscribers, key)
				close(sub)
			}
		})
	}

	return ch, unsubscribe, nil
}

// publish fans an event out; a subscriber that cannot keep up is dropped
// rather than receiving a gap. Callers hold ls.mu.
func (ls *liveSession) publish(ev domain.AnalysisEvent) {
	for key, ch := range ls.subscribers {
		select {
		case ch <- ev:
		default:
			delete(ls.subscribers, key)
			close(ch)
		}
	}
}

// SetCategory commits a category choice immediately
func (s *SessionService) SetCategory(ctx context.Context, id string, category domain.Category) (*domain.SessionState, error) {
	if category != domain.CategoryAll && !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidRequest, category)
	}
	return s.update(ctx, id, func(state *domain.SessionState) {
		state.Criteria.Category = category
	})
}

// SetStores replaces the retailer restriction immediately; empty means none
func (s *SessionService) SetStores(ctx context.Context, id string, stores []domain.Store) (*domain.SessionState, error) {
	cleaned := make([]domain.Store, 0, len(stores))
	for _, st := range stores {
		if st == "" {
			return nil, fmt.Errorf("%w: empty store name", domain.ErrInvalidRequest)
		}
		if !slices.Contains(cleaned, st) {
			cleaned = append(cleaned, st)
		}
	}
	return s.update(ctx, id, func(state *domain.SessionState) {
		state.Criteria.Stores = cleaned
	})
}

// ToggleStore adds the retailer to the restriction, or removes it if present
func (s *SessionService) ToggleStore(ctx context.Context, id string, store domain.Store) (*domain.SessionState, error) {
	if store == "" {
		return nil, fmt.Errorf("%w: empty store name", domain.ErrInvalidRequest)
	}
	return s.update(ctx, id, func(state *domain.SessionState) {
		if idx := slices.Index(state.Criteria.Stores, store); idx >= 0 {
			state.Criteria.Stores = slices.Delete(state.Criteria.Stores, idx, idx+1)
			return
		}
		state.Criteria.Stores = append(state.Criteria.Stores, store)
	})
}

// SetPriceRange schedules a debounced price commit. Each call restarts the
// quiet interval and only the last range is committed.
func (s *SessionService) SetPriceRange(ctx context.Context, id string, priceRange domain.PriceRange) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	ls := s.liveFor(id)
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.price.Push(pendingPrice{priceRange: priceRange, epoch: ls.epoch})
	return nil
}

// FlushPriceRange commits a pending price range without waiting
func (s *SessionService) FlushPriceRange(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	s.liveFor(id).price.Flush()
	return nil
}

// ClearFilters restores default criteria and discards any pending price commit
func (s *SessionService) ClearFilters(ctx context.Context, id string) (*domain.SessionState, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	ls := s.liveFor(id)
	ls.mu.Lock()
	defer ls.mu.Unlock()

	// a commit the debouncer already handed off is waiting on ls.mu; the
	// epoch bump makes it drop itself once it gets the lock
	ls.epoch++
	ls.price.Stop()
	return s.apply(ctx, id, func(state *domain.SessionState) {
		state.Criteria = domain.DefaultCriteria()
	})
}

// VisibleProducts runs the matching pipeline over the session's state
func (s *SessionService) VisibleProducts(ctx context.Context, id string) ([]domain.Product, *domain.SessionState, error) {
	state, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	products := s.matcher.ComputeVisibleProducts(ctx, s.catalog.Products(), state.Analysis, state.Criteria)
	return products, state, nil
}

// Close cancels every in-flight analysis and pending commit
func (s *SessionService) Close() {
	s.rootCancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ls := range s.live {
		s.shutdown(ls)
		delete(s.live, id)
	}
}

// update applies fn to the stored state under the session lock and saves it
func (s *SessionService) update(ctx context.Context, id string, fn func(*domain.SessionState)) (*domain.SessionState, error) {
	ls := s.liveFor(id)
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return s.apply(ctx, id, fn)
}

// apply loads, modifies and saves the state; callers hold the session lock
func (s *SessionService) apply(ctx context.Context, id string, fn func(*domain.SessionState)) (*domain.SessionState, error) {
	state, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	fn(state)
	if err := s.save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *SessionService) save(ctx context.Context, state *domain.SessionState) error {
	state.UpdatedAt = time.Now().UTC()
	if err := s.store.Save(ctx, state, s.ttl); err != nil {
		return fmt.Errorf("saving session %s: %w", state.ID, err)
	}
	return nil
}

// commitPrice is the debouncer callback for one session
func (s *SessionService) commitPrice(id string, ls *liveSession, p pendingPrice) {
	ctx := s.rootCtx
	if ctx.Err() != nil {
		return
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	if p.epoch != ls.epoch {
		if s.enableDebugLogging {
			logger.Debug(ctx).Str("session_id", id).Msg("price commit dropped after clear")
		}
		return
	}

	if _, err := s.apply(ctx, id, func(state *domain.SessionState) {
		state.Criteria.PriceRange = p.priceRange
	}); err != nil {
		logger.Warn(ctx).Err(err).Str("session_id", id).Msg("price commit dropped")
		return
	}
	if s.enableDebugLogging {
		logger.Debug(ctx).Str("session_id", id).Floats64("price_range", p.priceRange[:]).Msg("price range committed")
	}
}

func (s *SessionService) liveFor(id string) *liveSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	ls, ok := s.live[id]
	if !ok {
		ls = &liveSession{}
		ls.price = NewDebouncer(s.debounce, func(p pendingPrice) { s.commitPrice(id, ls, p) })
		s.live[id] = ls
	}
	return ls
}

func (s *SessionService) dropLive(id string) {
	s.mu.Lock()
	ls, ok := s.live[id]
	delete(s.live, id)
	s.mu.Unlock()

	if ok {
		s.shutdown(ls)
	}
}

// shutdown cancels the run and the price timer and closes subscribers.
// An analysis cut short here is reported as cancelled.
func (s *SessionService) shutdown(ls *liveSession) {
	ls.price.Stop()

	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.cancel != nil {
		ls.cancel()
		ls.cancel = nil
		s.observer.AnalysisFinished(OutcomeCancelled, time.Since(ls.startedAt))
	}
	ls.gen++
	for key, ch := range ls.subscribers {
		delete(ls.subscribers, key)
		close(ch)
	}
}

// sweepLoop periodically drops the runtime of sessions the store has expired
func (s *SessionService) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.rootCtx.Done():
			return
		case <-ticker.C:
			s.sweepLive(s.rootCtx)
		}
	}
}

// sweepLive drops every live runtime whose session no longer exists in the store
func (s *SessionService) sweepLive(ctx context.Context) {
	s.mu.Lock()
	ids := make([]string, 0, len(s.live))
	for id := range s.live {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	dropped := 0
	for _, id := range ids {
		exists, err := s.store.Exists(ctx, id)
		if err != nil {
			logger.Warn(ctx).Err(err).Msg("live session sweep stopped")
			return
		}
		if !exists {
			s.dropLive(id)
			dropped++
		}
	}

	if dropped > 0 && s.enableDebugLogging {
		logger.Debug(ctx).Int("dropped", dropped).Int("checked", len(ids)).Msg("expired session runtimes dropped")
	}
}
