package app

import (
	"context"
	"errors"
	"sync"

	"github.com/bft-labs/opstate/internal/domain"
	"github.com/bft-labs/opstate/internal/ports"
	"github.com/bft-labs/opstate/pkg/log"
)

// Observer is called after the tracker persists a new state.
type Observer interface {
	OnStateChange(previous, current domain.State, reason string)
}

// Tracker drives the operation state machine on top of a StateRepository:
//
//	NoOperation -> Begin(id, status) -> Transition(status)... -> Finish -> NoOperation
//
// The repository has no locking of its own; Tracker serializes every
// read-modify-write so concurrent callers in one process cannot lose updates.
type Tracker struct {
	mu       sync.Mutex
	repo     ports.StateRepository
	logger   ports.Logger
	observer Observer
}

// NewTracker creates a tracker over repo. logger and observer may be nil.
func NewTracker(repo ports.StateRepository, logger ports.Logger, observer Observer) *Tracker {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Tracker{
		repo:     repo,
		logger:   logger,
		observer: observer,
	}
}

// Recover loads the persisted state at startup.
//
// A missing state file means first run: the empty state is stored and
// returned. Unreadable state data cannot be acted upon either, so it is
// logged, replaced with the empty state and returned as such. Other errors
// are returned unchanged.
func (t *Tracker) Recover(ctx context.Context) (domain.State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, err := t.repo.Load(ctx)
	switch {
	case err == nil:
		if !st.IsEmpty() {
			t.logger.Info("recovered operation", log.Stringer("state", st))
		}
		return st, nil
	case errors.Is(err, domain.ErrNotFound):
		t.logger.Info("no operation state found, initializing")
	case errors.Is(err, domain.ErrMalformed):
		t.logger.Warn("discarding unreadable operation state", log.Err(err))
	default:
		return domain.State{}, err
	}

	cleared, err := t.repo.Clear(ctx)
	if err != nil {
		return domain.State{}, err
	}
	t.notify(domain.State{}, cleared, "recover")
	return cleared, nil
}

// Begin records a new operation. It fails with domain.ErrOperationInProgress
// if another operation is still recorded.
func (t *Tracker) Begin(ctx context.Context, id string, status domain.StateStatus) error {
	if id == "" {
		return domain.ErrInvalidOperationID
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	current, err := t.load(ctx)
	if err != nil {
		return err
	}
	if currentID, ok := current.ID(); ok {
		t.logger.Warn("operation already in progress",
			log.String("operation_id", currentID),
			log.String("requested_id", id),
		)
		return domain.ErrOperationInProgress
	}

	next := domain.NewState(id, status)
	if err := t.repo.Store(ctx, next); err != nil {
		return err
	}

	t.logger.Info("operation started",
		log.String("operation_id", id),
		log.Stringer("operation", status),
	)
	t.notify(current, next, "begin")
	return nil
}

// Transition moves the recorded operation to status, keeping its id.
// It fails with domain.ErrNoOperation if nothing is recorded, including
// when no state file exists yet.
func (t *Tracker) Transition(ctx context.Context, status domain.StateStatus) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, err := t.load(ctx)
	if err != nil {
		return err
	}
	if current.IsEmpty() {
		return domain.ErrNoOperation
	}

	if err := t.repo.Update(ctx, status); err != nil {
		return err
	}

	next := current.WithStatus(status)
	t.logger.Info("operation transition",
		log.Stringer("from", statusOf(current)),
		log.Stringer("to", status),
	)
	t.notify(current, next, "transition")
	return nil
}

// Finish clears the recorded operation.
func (t *Tracker) Finish(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	previous, err := t.load(ctx)
	if err != nil {
		return err
	}
	cleared, err := t.repo.Clear(ctx)
	if err != nil {
		return err
	}

	if id, ok := previous.ID(); ok {
		t.logger.Info("operation finished", log.String("operation_id", id))
	}
	t.notify(previous, cleared, "finish")
	return nil
}

// Current returns the persisted state.
func (t *Tracker) Current(ctx context.Context) (domain.State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.repo.Load(ctx)
}

// load treats a missing state file as no operation in progress.
func (t *Tracker) load(ctx context.Context) (domain.State, error) {
	st, err := t.repo.Load(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.State{}, nil
	}
	return st, err
}

func (t *Tracker) notify(previous, current domain.State, reason string) {
	if t.observer != nil {
		t.observer.OnStateChange(previous, current, reason)
	}
}

func statusOf(st domain.State) domain.StateStatus {
	status, _ := st.Status()
	return status
}
