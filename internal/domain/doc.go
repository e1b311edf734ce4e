// Package domain contains the core domain entities and value objects for opstate.
//
// This package represents the innermost layer of the Clean Architecture. It has
// no dependencies on infrastructure concerns (file system, TOML, logging) and
// contains only the operation state model and its error taxonomy.
//
// # Entities
//
//   - [State]: The persisted record of the in-progress operation
//   - [StateStatus]: The kind and phase of that operation (software or restart)
//   - [Error]: A typed failure carrying an [ErrorKind]
//
// # Design Principles
//
// Domain entities are:
//   - Value types, safe to copy and compare with reflect.DeepEqual
//   - Free of infrastructure dependencies
//   - Encoded to their on-disk text form through encoding.TextMarshaler
package domain
