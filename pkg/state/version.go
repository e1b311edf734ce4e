package state

// Version is the release of the state file layout and API.
// The on-disk format has not changed since 1.0.0.
const Version = "1.0.0"
