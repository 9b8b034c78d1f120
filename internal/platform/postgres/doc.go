// Package postgres provides PostgreSQL implementations of the storage
// interfaces defined in internal/store: emotion events, journal entries,
// strategy feedback and strategy preferences. It also embeds the schema
// migrations and maps PostgreSQL errors to store errors.
//
// Stores work on a store.DBTX so they can run against a *sql.DB opened with
// the pgx stdlib driver or inside a *sql.Tx.
package postgres
