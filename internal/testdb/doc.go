// Package testdb provides helpers for PostgreSQL integration tests: locating
// the test database, applying the embedded migrations once, and running each
// test inside a rolled-back transaction.
//
// Tests using it should carry the integration build tag; they are skipped
// when DATABASE_URL is not set.
package testdb
