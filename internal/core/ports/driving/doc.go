// Package driving defines the interfaces through which the outside
// world drives the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// Core services implement them; the CLI (and any future delivery layer)
// consumes them.
//
//   - QueryService: Read access to the published index
//   - Synchronizer: Control over the background refresh loop
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or source package
package driving
