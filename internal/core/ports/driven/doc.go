// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Engine: The native search-engine ABI (databases, documents, queries,
//     stemmers, term generators and their iterator cursors)
//   - IndexStore: Document persistence behind the embedded engine
//   - Normaliser, NormaliserRegistry: Extract indexable text from file content
//   - FileSource: Enumerates, reads and watches local files
//   - ConfigStore: Application configuration
//
// # Implementations
//
//   - cgo/xapian: libxapian through a C shim (requires cgo and -tags xapian)
//   - internal/adapters/driven/engine/embedded: pure-Go engine over SQLite
//   - internal/adapters/driven/storage/sqlite: IndexStore
//   - internal/normalisers: Normaliser and NormaliserRegistry
//   - internal/connectors/filesystem: FileSource
//   - internal/adapters/driven/config/file: ConfigStore
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
