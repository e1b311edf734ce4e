package fs

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bft-labs/opstate/internal/domain"
)

// stateRecord is the on-disk shape of a State. Both values must be TOML
// strings; the status text is interpreted after decoding.
type stateRecord struct {
	OperationID *string `toml:"operation_id"`
	Operation   *string `toml:"operation"`
}

// encodeState renders st as TOML. Absent fields are omitted, so the empty
// State encodes to zero bytes.
func encodeState(st domain.State) ([]byte, error) {
	if id, ok := st.ID(); ok && !utf8.ValidString(id) {
		return nil, fmt.Errorf("operation id %q is not valid UTF-8", id)
	}
	return toml.Marshal(st)
}

// decodeState parses TOML into a State. Unknown keys and non-string values
// are rejected.
func decodeState(data []byte) (domain.State, error) {
	var rec stateRecord
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		return domain.State{}, err
	}

	st := domain.State{OperationID: rec.OperationID}
	if rec.Operation != nil {
		status := domain.ParseStatus(*rec.Operation)
		st.Operation = &status
	}
	return st, nil
}
