package app

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/bft-labs/opstate/internal/adapters/fs"
	"github.com/bft-labs/opstate/internal/domain"
)

// mockObserver tracks state change events for testing.
type mockObserver struct {
	mu     sync.Mutex
	events []stateChangeEvent
}

type stateChangeEvent struct {
	previous domain.State
	current  domain.State
	reason   string
}

func (m *mockObserver) OnStateChange(previous, current domain.State, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, stateChangeEvent{previous, current, reason})
}

func (m *mockObserver) Events() []stateChangeEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]stateChangeEvent{}, m.events...)
}

func newTestTracker(t *testing.T) (*Tracker, *fs.StateFileRepository, *mockObserver) {
	t.Helper()
	repo := fs.NewStateFileRepository(t.TempDir(), nil)
	obs := &mockObserver{}
	return NewTracker(repo, nil, obs), repo, obs
}

func TestTracker_RecoverFirstRun(t *testing.T) {
	tracker, repo, obs := newTestTracker(t)
	ctx := context.Background()

	st, err := tracker.Recover(ctx)
	if err != nil {
		t.Fatalf("Recover() error = %v", err)
	}
	if !st.IsEmpty() {
		t.Errorf("Recover() = %v, want empty", st)
	}
	if _, err := repo.Load(ctx); err != nil {
		t.Errorf("Recover should initialize the state file: %v", err)
	}
	if events := obs.Events(); len(events) != 1 || events[0].reason != "recover" {
		t.Errorf("events = %+v", events)
	}
}

func TestTracker_RecoverInProgress(t *testing.T) {
	tracker, repo, obs := newTestTracker(t)
	ctx := context.Background()

	want := domain.NewState("42", domain.Restart(domain.RestartRestarting))
	if err := repo.Store(ctx, want); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	got, err := tracker.Recover(ctx)
	if err != nil {
		t.Fatalf("Recover() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Recover() = %v, want %v", got, want)
	}
	if events := obs.Events(); len(events) != 0 {
		t.Errorf("recovering an existing state should not emit events: %+v", events)
	}
}

func TestTracker_RecoverMalformed(t *testing.T) {
	tracker, repo, _ := newTestTracker(t)
	ctx := context.Background()

	if err := os.MkdirAll(repo.Root(), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(repo.Path(), []byte("garbage = true\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	st, err := tracker.Recover(ctx)
	if err != nil {
		t.Fatalf("Recover() error = %v", err)
	}
	if !st.IsEmpty() {
		t.Errorf("Recover() = %v, want empty", st)
	}
	loaded, err := repo.Load(ctx)
	if err != nil || !loaded.IsEmpty() {
		t.Errorf("Load() after recover = %v, %v", loaded, err)
	}
}

func TestTracker_RecoverPropagatesIOError(t *testing.T) {
	root := t.TempDir()
	// A directory in place of the state file makes the read fail.
	if err := os.MkdirAll(filepath.Join(root, fs.RepoDirName, fs.StateFileName), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	tracker := NewTracker(fs.NewStateFileRepository(root, nil), nil, nil)

	_, err := tracker.Recover(context.Background())
	if !errors.Is(err, domain.ErrIO) || errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Recover() error = %v, want io failure", err)
	}
}

func TestTracker_Lifecycle(t *testing.T) {
	tracker, repo, obs := newTestTracker(t)
	ctx := context.Background()

	if err := tracker.Begin(ctx, "1234", domain.Software(domain.SoftwareList)); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if err := tracker.Transition(ctx, domain.Restart(domain.RestartPending)); err != nil {
		t.Fatalf("Transition() error = %v", err)
	}

	st, err := tracker.Current(ctx)
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	want := domain.NewState("1234", domain.Restart(domain.RestartPending))
	if !reflect.DeepEqual(st, want) {
		t.Errorf("Current() = %v, want %v", st, want)
	}

	if err := tracker.Finish(ctx); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	st, err = repo.Load(ctx)
	if err != nil || !st.IsEmpty() {
		t.Errorf("Load() after Finish = %v, %v", st, err)
	}

	var reasons []string
	for _, e := range obs.Events() {
		reasons = append(reasons, e.reason)
	}
	if !reflect.DeepEqual(reasons, []string{"begin", "transition", "finish"}) {
		t.Errorf("reasons = %v", reasons)
	}
	last := obs.Events()[2]
	if !reflect.DeepEqual(last.previous, want) {
		t.Errorf("finish previous = %v, want %v", last.previous, want)
	}
}

func TestTracker_BeginWhileInProgress(t *testing.T) {
	tracker, _, _ := newTestTracker(t)
	ctx := context.Background()

	if err := tracker.Begin(ctx, "1", domain.Software(domain.SoftwareUpdate)); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	err := tracker.Begin(ctx, "2", domain.Restart(domain.RestartPending))
	if !errors.Is(err, domain.ErrOperationInProgress) {
		t.Fatalf("Begin() error = %v, want ErrOperationInProgress", err)
	}

	st, _ := tracker.Current(ctx)
	if id, _ := st.ID(); id != "1" {
		t.Errorf("operation id = %q, want 1", id)
	}
}

func TestTracker_BeginEmptyID(t *testing.T) {
	tracker, _, _ := newTestTracker(t)

	err := tracker.Begin(context.Background(), "", domain.Software(domain.SoftwareList))
	if !errors.Is(err, domain.ErrInvalidOperationID) {
		t.Fatalf("Begin() error = %v, want ErrInvalidOperationID", err)
	}
}

func TestTracker_TransitionWithoutOperation(t *testing.T) {
	tracker, repo, _ := newTestTracker(t)
	ctx := context.Background()

	if err := tracker.Transition(ctx, domain.Restart(domain.RestartPending)); !errors.Is(err, domain.ErrNoOperation) {
		t.Fatalf("Transition() before any state error = %v, want ErrNoOperation", err)
	}
	if _, err := os.Stat(repo.Path()); !errors.Is(err, iofs.ErrNotExist) {
		t.Errorf("Transition() without an operation must not create the state file, stat error = %v", err)
	}

	if _, err := tracker.Recover(ctx); err != nil {
		t.Fatalf("Recover() error = %v", err)
	}
	if err := tracker.Transition(ctx, domain.Restart(domain.RestartPending)); !errors.Is(err, domain.ErrNoOperation) {
		t.Fatalf("Transition() when idle error = %v, want ErrNoOperation", err)
	}
}

func TestTracker_ConcurrentTransitions(t *testing.T) {
	tracker, _, obs := newTestTracker(t)
	ctx := context.Background()

	if err := tracker.Begin(ctx, "concurrent", domain.Software(domain.SoftwareList)); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}

	statuses := []domain.StateStatus{
		domain.Software(domain.SoftwareUpdate),
		domain.Restart(domain.RestartPending),
		domain.Restart(domain.RestartRestarting),
	}

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := tracker.Transition(ctx, statuses[i%len(statuses)]); err != nil {
				t.Errorf("Transition() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	st, err := tracker.Current(ctx)
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if id, _ := st.ID(); id != "concurrent" {
		t.Errorf("operation id = %q after concurrent updates", id)
	}
	if n := len(obs.Events()); n != 31 {
		t.Errorf("got %d events, want 31", n)
	}
}
