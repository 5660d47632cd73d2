// Package sftemplate implements the sftemplate command line interface.
package sftemplate
