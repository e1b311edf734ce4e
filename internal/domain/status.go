package domain

import "fmt"

// SoftwareOperation is the phase of a software-management operation.
// Its value is the on-disk spelling.
type SoftwareOperation string

const (
	SoftwareList   SoftwareOperation = "list"
	SoftwareUpdate SoftwareOperation = "update"
)

// RestartStatus is the phase of a restart operation.
// Unlike SoftwareOperation it is stored capitalized; existing state files
// depend on that spelling.
type RestartStatus string

const (
	RestartPending    RestartStatus = "Pending"
	RestartRestarting RestartStatus = "Restarting"
)

// unknownOperationText is written for UnknownOperation.
const unknownOperationText = "unknown"

func parseSoftwareOperation(s string) (SoftwareOperation, bool) {
	switch op := SoftwareOperation(s); op {
	case SoftwareList, SoftwareUpdate:
		return op, true
	}
	return "", false
}

func parseRestartStatus(s string) (RestartStatus, bool) {
	switch st := RestartStatus(s); st {
	case RestartPending, RestartRestarting:
		return st, true
	}
	return "", false
}

// StatusKind discriminates the StateStatus variants.
type StatusKind int

const (
	StatusUnknown StatusKind = iota
	StatusSoftware
	StatusRestart
)

// String returns a human-readable representation of the kind.
func (k StatusKind) String() string {
	switch k {
	case StatusSoftware:
		return "Software"
	case StatusRestart:
		return "Restart"
	default:
		return "UnknownOperation"
	}
}

// StateStatus is the kind and phase of the in-progress operation.
// Exactly one of Software or Restart is meaningful, selected by Kind.
// The zero value is UnknownOperation.
type StateStatus struct {
	Kind     StatusKind
	Software SoftwareOperation
	Restart  RestartStatus
}

// Software returns a software-management status.
func Software(op SoftwareOperation) StateStatus {
	return StateStatus{Kind: StatusSoftware, Software: op}
}

// Restart returns a restart status.
func Restart(st RestartStatus) StateStatus {
	return StateStatus{Kind: StatusRestart, Restart: st}
}

// UnknownOperation returns the fallback status used for unrecognized values.
func UnknownOperation() StateStatus {
	return StateStatus{Kind: StatusUnknown}
}

// ParseStatus decodes the on-disk text of a status. Software variants are
// tried first, then restart variants; anything else is UnknownOperation.
// Matching is case-sensitive.
func ParseStatus(s string) StateStatus {
	if op, ok := parseSoftwareOperation(s); ok {
		return Software(op)
	}
	if st, ok := parseRestartStatus(s); ok {
		return Restart(st)
	}
	return UnknownOperation()
}

// IsUnknown reports whether s is the UnknownOperation fallback.
func (s StateStatus) IsUnknown() bool { return s.Kind == StatusUnknown }

// MarshalText implements encoding.TextMarshaler.
func (s StateStatus) MarshalText() ([]byte, error) {
	switch s.Kind {
	case StatusSoftware:
		if _, ok := parseSoftwareOperation(string(s.Software)); !ok {
			return nil, fmt.Errorf("invalid software operation %q", s.Software)
		}
		return []byte(s.Software), nil
	case StatusRestart:
		if _, ok := parseRestartStatus(string(s.Restart)); !ok {
			return nil, fmt.Errorf("invalid restart status %q", s.Restart)
		}
		return []byte(s.Restart), nil
	case StatusUnknown:
		return []byte(unknownOperationText), nil
	default:
		return nil, fmt.Errorf("invalid status kind %d", s.Kind)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler. It never fails:
// unrecognized text decodes to UnknownOperation.
func (s *StateStatus) UnmarshalText(text []byte) error {
	*s = ParseStatus(string(text))
	return nil
}

// String returns the variant and its phase, e.g. "Software(list)".
func (s StateStatus) String() string {
	switch s.Kind {
	case StatusSoftware:
		return fmt.Sprintf("Software(%s)", s.Software)
	case StatusRestart:
		return fmt.Sprintf("Restart(%s)", s.Restart)
	default:
		return s.Kind.String()
	}
}
