package domain

// State is the persisted record of the in-progress operation.
// Both fields are absent when no operation is active.
type State struct {
	// OperationID identifies the in-progress operation.
	OperationID *string `toml:"operation_id,omitempty"`

	// Operation is the kind and phase of the in-progress operation.
	Operation *StateStatus `toml:"operation,omitempty"`
}

// NewState returns a State recording operation id in the given status.
func NewState(id string, status StateStatus) State {
	return State{OperationID: &id, Operation: &status}
}

// ID returns the operation id and whether it is set.
func (s State) ID() (string, bool) {
	if s.OperationID == nil {
		return "", false
	}
	return *s.OperationID, true
}

// Status returns the operation status and whether it is set.
func (s State) Status() (StateStatus, bool) {
	if s.Operation == nil {
		return StateStatus{}, false
	}
	return *s.Operation, true
}

// IsEmpty returns true if no operation is recorded.
func (s State) IsEmpty() bool {
	return s.OperationID == nil && s.Operation == nil
}

// WithStatus returns a copy of s with Operation replaced by status.
// OperationID is left untouched.
func (s State) WithStatus(status StateStatus) State {
	s.Operation = &status
	return s
}

// String renders the state for logs and the CLI.
func (s State) String() string {
	id, ok := s.ID()
	if !ok {
		id = "none"
	}
	op := "none"
	if st, ok := s.Status(); ok {
		op = st.String()
	}
	return "operation_id=" + id + " operation=" + op
}
