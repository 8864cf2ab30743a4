package view

import (
	"context"
	"log/slog"
	"sync"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "failed"
	}
}

// FetchFunc loads everything a page needs in one call. When several
// collections are involved the implementation fetches them concurrently
// (errgroup) and returns the combined result only once all succeeded, so
// a page is never rendered half-ready.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Snapshot is an immutable view of the synchronizer for rendering.
type Snapshot[T any] struct {
	State   State
	Data    T
	Kind    ErrorKind
	Message string
}

// Synchronizer drives the Idle -> Loading -> Ready | Failed lifecycle of
// a page. A generation counter invalidates in-flight fetches when the
// route parameter changes or the view goes away, so a stale response can
// never overwrite newer state.
type Synchronizer[T any] struct {
	mu      sync.Mutex
	fetch   FetchFunc[T]
	state   State
	data    T
	kind    ErrorKind
	message string
	gen     int
	logger  *slog.Logger
}

func NewSynchronizer[T any](fetch FetchFunc[T], logger *slog.Logger) *Synchronizer[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synchronizer[T]{
		fetch:  fetch,
		state:  StateIdle,
		logger: logger,
	}
}

// Load runs the fetch and commits the outcome, unless the synchronizer
// was reset or cancelled while the fetch was in flight. It blocks until
// the fetch returns; callers that need it off their event loop run it in
// a goroutine and re-render on return.
func (s *Synchronizer[T]) Load(ctx context.Context) {
	s.mu.Lock()
	if s.fetch == nil {
		s.mu.Unlock()
		return
	}
	s.gen++
	myGen := s.gen
	s.state = StateLoading
	fetch := s.fetch
	s.mu.Unlock()

	data, err := fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != myGen {
		// A newer load or a cancellation superseded this fetch.
		return
	}
	if err != nil {
		kind := Classify(err)
		s.state = StateFailed
		s.kind = kind
		s.message = userMessage(kind)
		s.logger.Warn("view load failed",
			slog.String("kind", kind.String()),
			slog.Any("error", err),
		)
		return
	}
	s.state = StateReady
	s.data = data
	s.kind = KindNone
	s.message = ""
}

// Retry re-enters Loading with the same fetch. Only meaningful from
// Failed but harmless otherwise.
func (s *Synchronizer[T]) Retry(ctx context.Context) {
	s.Load(ctx)
}

// Refresh re-issues the same fetch used to reach Ready. Called after
// every mutation instead of splicing results locally: the extra round
// trip buys a view that always matches store state.
func (s *Synchronizer[T]) Refresh(ctx context.Context) {
	s.Load(ctx)
}

// Reset repoints the synchronizer at a new fetch (route param changed)
// and drops any in-flight result. The caller follows up with Load.
func (s *Synchronizer[T]) Reset(fetch FetchFunc[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.fetch = fetch
	s.state = StateIdle
	var zero T
	s.data = zero
	s.kind = KindNone
	s.message = ""
}

// Cancel abandons interest in any in-flight fetch; its result will be
// dropped instead of mutating state for a view that no longer exists.
func (s *Synchronizer[T]) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
}

func (s *Synchronizer[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot[T]{
		State:   s.state,
		Data:    s.data,
		Kind:    s.kind,
		Message: s.message,
	}
}

func (s *Synchronizer[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func userMessage(kind ErrorKind) string {
	switch kind {
	case KindUnauthenticated:
		return "Your session has expired. Please log in again."
	case KindNotFound:
		return "The requested record could not be found."
	case KindValidation:
		return "Some of the entered values are invalid."
	case KindStore:
		return "Could not load your data. Check your connection and retry."
	default:
		return "Something went wrong. Please try again."
	}
}
