package state

import (
	"github.com/bft-labs/opstate/internal/adapters/fs"
	"github.com/bft-labs/opstate/pkg/log"
)

// FileRepository implements Repository using a TOML file under <root>/.agent.
type FileRepository = fs.StateFileRepository

// Option configures optional behavior of a FileRepository.
type Option func(*options)

type options struct {
	logger log.Logger
}

// WithLogger sets a logger for debug output on load and store.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// NewFileRepository creates a FileRepository bound to root.
// It performs no I/O; the .agent directory is created on first store.
func NewFileRepository(root string, opts ...Option) *FileRepository {
	o := options{logger: log.NewNoopLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return fs.NewStateFileRepository(root, o.logger)
}
