// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// Ports are the boundaries between the team store and the outside world.
// They say what the core needs from external systems without saying how
// those needs are met.
//
// # Port Interfaces
//
//   - [RosterLoader]: fetches the player roster from the stats endpoint
//   - [LocalStorage]: namespaced key-value persistence for store snapshots
//   - [Logger]: structured logging abstraction
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//
// # Usage
//
// The store (internal/store) and the session (internal/app) depend only on
// these interfaces. Adapters (internal/adapters) implement them with
// concrete technology (HTTP, files, SQLite, zerolog).
package ports
