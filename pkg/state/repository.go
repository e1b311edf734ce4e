package state

import "github.com/bft-labs/opstate/internal/ports"

// Repository handles operation state persistence for crash recovery.
// Implementations persist state to disk (or other storage) atomically.
//
// Load fails with ErrNotFound when nothing has been stored yet and with
// ErrMalformed when the stored data is not a valid State. Update is a
// load followed by a store and is not safe against concurrent writers.
type Repository = ports.StateRepository
