// Package postgres implements the store interfaces on PostgreSQL through
// sqlx over the pgx stdlib driver. It owns the embedded goose migrations and
// the translation of driver errors into store error kinds.
package postgres
