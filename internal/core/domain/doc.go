// Package domain defines the core business entities for the Paperless CLI.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Correspondent: a named party documents are attributed to
//   - Document: a read-only snapshot of a server document
//   - Task: an observed asynchronous ingestion job
//   - Mutation: the closed set of state-changing server operations
//   - MigrationReport / UploadReport: per-item outcomes of batch work
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
