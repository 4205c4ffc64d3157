// Package store provides HistoryStore implementations.
//
// The HistoryStore interface is defined in the parent gamestate package
// (../store_interface.go) so the session package can depend on it without
// importing a concrete backend.
//
// This package contains:
//   - DynamoDBHistory: AWS DynamoDB backend
//   - MemoryHistory: in-memory backend for tests and local runs
//
// Both backends key entries with the single-table layout in schema.go.
package store
