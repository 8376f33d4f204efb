// Package domain contains the core entities and value objects for dreamteam.
//
// This package is the innermost layer. It has no dependencies on
// infrastructure concerns (HTTP, storage, logging) and contains only the
// rules that the team store builds on.
//
// # Entities
//
//   - [Player]: a roster entry identified by name, with a [Runs] statistic
//   - [Team]: an ordered set of players, at most one entry per name
//   - [Snapshot]: the persisted portion of the store (teams + current pointer)
//   - [LoadStatus]: where the roster load lifecycle currently stands
package domain
