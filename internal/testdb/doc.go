// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database. Tests are skipped unless ATTUNE_TEST_DATABASE_URL is
// set. The schema is brought up to date once per process using the embedded
// migrations, and each test runs in a transaction that is rolled back.
package testdb
