// Package manifest holds the package accumulator that backs package.xml and
// the helpers that read and normalise Salesforce metadata XML.
//
// Handlers register each metadata companion they emit with Add. The Package
// handler hands the accumulator itself to the manifest template, which reads
// it when package.xml is written, so every manifest lists all registrations
// of the build.
package manifest
