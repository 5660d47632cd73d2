// Package render executes artifact templates and writes the results.
//
// Templates use text/template with the sprig function map. Files ending in
// .xml are parsed back with etree before they are written, so a template that
// produces malformed metadata fails the build instead of shipping a broken
// file.
package render
