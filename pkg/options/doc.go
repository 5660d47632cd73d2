// Package options resolves the option set of each artifact from explicit
// layers.
//
// Every handler builds its options in the same documented order, lowest
// precedence first:
//
//  1. plugin defaults (apiVersion, meta, xmlNamespace)
//  2. kind defaults (page title, derived controller, ...)
//  3. the caller's global options
//  4. the descriptor's own fields
//
// Layers 3 and 4 reach a handler already merged, as the set handed down by
// the dispatcher or by the parent handler of a cascade. A caller value always
// wins over a default, including explicit false values.
package options
