// Package api contains the HTTP handlers for persons, items, invoices and
// token issuance. Handlers decode requests, call the services, and map
// service failure kinds to HTTP statuses with a {"status","error"} body.
package api
