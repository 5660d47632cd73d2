// Package types defines the values passed between the dispatcher, the
// artifact handlers and the renderer: the closed set of template kinds,
// controller options, file descriptors and resolved artifacts.
package types
