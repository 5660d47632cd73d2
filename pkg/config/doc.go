// Package config loads build options from an embedded defaults file, a TOML
// or YAML config file, SFTEMPLATE_* environment variables and command line
// overrides, in increasing order of precedence.
//
// The loaded options stay a plain map so that arbitrary keys reach the
// templates; Config is a typed view of the well-known keys.
package config
