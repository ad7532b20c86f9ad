// Package storage defines the clipboard persistence interface and provides
// concrete implementations for clipd's data layer, enabling pluggable
// storage backends with a consistent API for clipboard records.
//
// # Overview
//
// The storage package is the foundation of clipd's persistence, providing a
// clean abstraction over the backing store. The HTTP layer never touches a
// database or map directly; everything flows through the Store interface.
//
// # Architecture
//
// The package follows a layered design:
//
//	┌─────────────────────────────────────┐
//	│           HTTP Handlers             │
//	│           (cmd/clipd)               │
//	└─────────────────────────────────────┘
//	                 │
//	                 ▼
//	┌─────────────────────────────────────┐
//	│          Store Interface            │
//	│  (Create, Get, Update, Delete,      │
//	│   List, Stats, Close)               │
//	└─────────────────────────────────────┘
//	                 │
//	        ┌────────┴────────┐
//	        ▼                 ▼
//	  ┌──────────┐      ┌──────────┐
//	  │  Memory  │      │  SQLite  │
//	  │  Store   │      │  Store   │
//	  └──────────┘      └──────────┘
//
// # Implementations
//
// MemoryStore: In-memory storage with sync.RWMutex
//   - Fast operations, no persistence
//   - Suitable for tests and throwaway deployments
//   - Returns cloned records to prevent external modification
//
// SQLiteStore: Durable storage via modernc.org/sqlite
//   - Single-file database, no cgo
//   - WAL journal mode for concurrent reader/writer access
//   - Timestamps stored as RFC3339Nano text
//
// # Semantics
//
// All implementations share the same contract:
//   - Create fails with ErrExists on an ID collision
//   - Get and Update fail with ErrNotFound for unknown IDs
//   - Update bumps updated_at, preserving updated_at >= created_at
//   - Delete is idempotent
//   - List orders summaries by updated_at, newest first
//
// Content validation (size limits) happens above this layer; stores accept
// whatever content they are handed.
//
// # Concurrency and Thread Safety
//
// All storage implementations guarantee thread safety. MemoryStore uses a
// single RWMutex so readers proceed concurrently. SQLiteStore relies on
// database/sql's connection pooling plus SQLite's WAL mode and busy
// timeout.
package storage
