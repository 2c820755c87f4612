// Package postgres implements the store interfaces on PostgreSQL through
// database/sql and the pgx driver, and embeds the goose schema migrations.
//
// Stores accept a store.DBTX so they run equally against a pool or inside
// a transaction. Database errors are translated by MapError.
package postgres
