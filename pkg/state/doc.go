// Package state persists the current device-management operation so that an
// agent can recover it after a crash or restart.
//
// A single record is kept at <root>/.agent/current-operation as TOML. Every
// write goes to a sibling temp file which is flushed and renamed over the
// record, so the file is never observed half written.
//
// # Usage
//
// Create a file-based repository:
//
//	repo := state.NewFileRepository("/etc/opstate")
//
//	// Start tracking an operation
//	if err := repo.Store(ctx, state.NewState("1234", state.Software(state.SoftwareList))); err != nil {
//	    return err
//	}
//
//	// Move it to another phase, keeping its id
//	if err := repo.Update(ctx, state.Restart(state.RestartPending)); err != nil {
//	    return err
//	}
//
//	// Done
//	if _, err := repo.Clear(ctx); err != nil {
//	    return err
//	}
//
// Load on a repository that was never written fails with ErrNotFound;
// call Clear on first run to start from "no operation in progress".
//
// # Backward Compatibility
//
// Software phases are stored lowercase ("list", "update") and restart phases
// capitalized ("Pending", "Restarting"), matching state files written by
// earlier agents.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package state
