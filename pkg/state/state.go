package state

import "github.com/bft-labs/opstate/internal/domain"

// Re-export domain types so callers never import internal packages.
type (
	// State is the persisted record of the in-progress operation.
	State = domain.State

	// StateStatus is the kind and phase of the in-progress operation.
	StateStatus = domain.StateStatus

	// StatusKind discriminates StateStatus variants.
	StatusKind = domain.StatusKind

	// SoftwareOperation is the phase of a software-management operation.
	SoftwareOperation = domain.SoftwareOperation

	// RestartStatus is the phase of a restart operation.
	RestartStatus = domain.RestartStatus

	// Error is a typed repository failure.
	Error = domain.Error

	// ErrorKind classifies repository failures.
	ErrorKind = domain.ErrorKind
)

const (
	StatusUnknown  = domain.StatusUnknown
	StatusSoftware = domain.StatusSoftware
	StatusRestart  = domain.StatusRestart

	SoftwareList   = domain.SoftwareList
	SoftwareUpdate = domain.SoftwareUpdate

	RestartPending    = domain.RestartPending
	RestartRestarting = domain.RestartRestarting

	KindIO        = domain.KindIO
	KindNotFound  = domain.KindNotFound
	KindMalformed = domain.KindMalformed
	KindSerialize = domain.KindSerialize
)

// Errors returned by repositories; check with errors.Is.
var (
	ErrIO        = domain.ErrIO
	ErrNotFound  = domain.ErrNotFound
	ErrMalformed = domain.ErrMalformed
	ErrSerialize = domain.ErrSerialize
)

// NewState returns a State recording operation id in the given status.
func NewState(id string, status StateStatus) State { return domain.NewState(id, status) }

// Software returns a software-management status.
func Software(op SoftwareOperation) StateStatus { return domain.Software(op) }

// Restart returns a restart status.
func Restart(st RestartStatus) StateStatus { return domain.Restart(st) }

// UnknownOperation returns the fallback status for unrecognized values.
func UnknownOperation() StateStatus { return domain.UnknownOperation() }

// ParseStatus decodes the stored text of a status.
func ParseStatus(s string) StateStatus { return domain.ParseStatus(s) }
