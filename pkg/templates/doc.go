// Package templates embeds the built-in templates, one per artifact kind.
//
// Templates are Go text/templates extended with the sprig function map. They
// receive the artifact's resolved options as a map keyed by option name, so a
// page template reads {{ .apiName }} and {{ .controller.apiName }}, and the
// manifest template ranges over {{ .package }}.
package templates
