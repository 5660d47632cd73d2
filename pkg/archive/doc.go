// Package archive zips a directory into a Salesforce static resource.
package archive
