// Package config loads and validates service configuration.
//
// Values come from built-in defaults, an optional config.yaml in the working
// directory, an optional .env file and INVENTORY_-prefixed environment
// variables, in increasing order of precedence. DATABASE_URL and JWT_SECRET
// are also honoured without the prefix.
package config
