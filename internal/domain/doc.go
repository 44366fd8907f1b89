// Package domain contains the resource models returned to clients and the
// request payloads accepted for them. Models carry no persistence details:
// the sequence id used for paging never appears in a resource body.
package domain
