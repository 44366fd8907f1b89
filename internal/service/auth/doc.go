// Package auth issues and verifies HS256 bearer tokens and checks the client
// credentials presented when a token is requested.
package auth
