// Package gormstore implements the store interfaces with GORM. It is the
// backend for the sqlite driver: local development without PostgreSQL and
// the end-to-end tests, which run against an in-memory database.
package gormstore
