// Package registry provides a generic, type-safe registry keyed by a string
// type. The handlers package uses it to map template kinds to handlers.
package registry
