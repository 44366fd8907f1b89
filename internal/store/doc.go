// Package store defines the persistence contracts for persons, items and
// invoices: row types, store interfaces, keyset pagination cursors and the
// storage error kinds every implementation must resolve to.
//
// Implementations live in internal/platform/postgres.
package store
