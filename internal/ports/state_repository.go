package ports

import (
	"context"

	"github.com/bft-labs/opstate/internal/domain"
)

// StateRepository persists the current operation state for crash recovery.
// Implementations persist state to disk (or other storage) atomically.
// Callers must serialize writes; implementations provide no locking.
type StateRepository interface {
	// Load retrieves the last saved state.
	// Returns an error of kind domain.KindNotFound if nothing was ever stored,
	// and domain.KindMalformed if the stored data is not a valid State.
	Load(ctx context.Context) (domain.State, error)

	// Store persists state, replacing any prior content.
	// The implementation must use atomic writes (e.g., write to temp file, then rename)
	// so that a crash never leaves a partially written record.
	Store(ctx context.Context, state domain.State) error

	// Clear stores the empty State and returns it.
	Clear(ctx context.Context) (domain.State, error)

	// Update loads the current state, replaces its operation status and stores it.
	// The operation id is left untouched. Load and store are not atomic as a pair.
	Update(ctx context.Context, status domain.StateStatus) error
}
