package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/bft-labs/opstate/internal/domain"
	"github.com/bft-labs/opstate/internal/ports"
	"github.com/bft-labs/opstate/pkg/log"
)

const (
	// RepoDirName is the directory created under the root to hold agent state.
	RepoDirName = ".agent"
	// StateFileName is the name of the single state file.
	StateFileName = "current-operation"

	dirPerm  = 0o755
	filePerm = 0o644
)

// StateFileRepository implements ports.StateRepository using a TOML file
// at <root>/.agent/current-operation.
type StateFileRepository struct {
	root   string
	path   string
	logger ports.Logger
}

// NewStateFileRepository creates a new StateFileRepository under the given root directory.
// No I/O happens until the first call.
func NewStateFileRepository(root string, logger ports.Logger) *StateFileRepository {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	repoRoot := filepath.Join(root, RepoDirName)
	return &StateFileRepository{
		root:   repoRoot,
		path:   filepath.Join(repoRoot, StateFileName),
		logger: logger,
	}
}

// Load reads and validates the state file.
// A missing file is an error of kind domain.KindNotFound, not an empty state.
// An empty file is the empty state.
func (r *StateFileRepository) Load(ctx context.Context) (domain.State, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return domain.State{}, domain.NewError(domain.KindNotFound, "load", r.path, err)
		}
		return domain.State{}, domain.NewError(domain.KindIO, "load", r.path, err)
	}

	st, err := decodeState(data)
	if err != nil {
		return domain.State{}, domain.NewError(domain.KindMalformed, "load", r.path, err)
	}

	r.logger.Debug("state loaded", log.String("path", r.path), log.Stringer("state", st))
	return st, nil
}

// Store persists the state atomically, creating the repository directory if needed.
func (r *StateFileRepository) Store(ctx context.Context, state domain.State) error {
	data, err := encodeState(state)
	if err != nil {
		return domain.NewError(domain.KindSerialize, "store", r.path, err)
	}

	// Only the last path element is created; the root itself must exist.
	if err := os.Mkdir(r.root, dirPerm); err != nil && !errors.Is(err, iofs.ErrExist) {
		return domain.NewError(domain.KindIO, "store", r.root, err)
	}

	if err := WriteFileAtomic(tempPath(r.path), r.path, data, filePerm); err != nil {
		return domain.NewError(domain.KindIO, "store", r.path, err)
	}

	r.logger.Debug("state stored", log.String("path", r.path), log.Stringer("state", state))
	return nil
}

// Clear resets the stored state to "no operation in progress" and returns it.
// The file is rewritten, not removed.
func (r *StateFileRepository) Clear(ctx context.Context) (domain.State, error) {
	var st domain.State
	if err := r.Store(ctx, st); err != nil {
		return domain.State{}, err
	}
	return st, nil
}

// Update replaces the operation status of the stored state, keeping its id.
func (r *StateFileRepository) Update(ctx context.Context, status domain.StateStatus) error {
	st, err := r.Load(ctx)
	if err != nil {
		return err
	}
	return r.Store(ctx, st.WithStatus(status))
}

// Path returns the full path to the state file.
func (r *StateFileRepository) Path() string {
	return r.path
}

// Root returns the repository directory holding the state file.
func (r *StateFileRepository) Root() string {
	return r.root
}

var _ ports.StateRepository = (*StateFileRepository)(nil)
