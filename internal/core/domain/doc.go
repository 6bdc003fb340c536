// Package domain defines the core business entities for Ripple.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Step: One of the nine sequential journal pages
//   - Document: The canonical nested record of all user answers
//   - FieldSpec: The declarative per-step input template table
//   - ProgressRecord: The persisted navigation/completion ledger
//   - Element / Connection: Ephemeral relationship-diagram geometry
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
