// Package plugin wires the configured descriptors into a build.
//
// New validates the caller's options up front: outputDir and files are
// required, and every descriptor must name a known template. Apply then
// dispatches the descriptors in order and, if distDir is set, registers the
// step that zips it into <outputDir>/staticResources/<apiName>.resource once
// every artifact has been written. The archive takes the apiName of the last
// SinglePageApp page so it matches the resource that page references.
package plugin
