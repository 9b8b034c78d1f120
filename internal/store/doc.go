// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic: emotion events, journal entries, strategy
// feedback and strategy preferences. The PostgreSQL implementations live in
// internal/platform/postgres.
package store
