// Package service holds the person, item and invoice services used by the
// HTTP handlers. A service validates its input, calls the store, converts
// rows into domain models and translates store failures into service kinds.
// Services never issue SQL themselves.
package service
