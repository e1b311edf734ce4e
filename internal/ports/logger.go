package ports

import "github.com/bft-labs/opstate/pkg/log"

// Logger is the structured logging port used by internal packages.
type Logger = log.Logger

// Field is a structured log field.
type Field = log.Field
