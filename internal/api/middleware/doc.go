// Package middleware contains the chi middleware shared by all routes:
// request tracing, per-request deadlines and bearer token authentication.
package middleware
