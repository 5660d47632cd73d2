package types

// Sharing is the data visibility mode of a generated Apex class
type Sharing string

const (
	SharingWith    Sharing = "with"
	SharingWithout Sharing = "without"
	SharingInherit Sharing = "inherit"
)

// Clause returns the class modifier for the sharing mode. Unknown or empty
// modes fall back to "with sharing".
func (s Sharing) Clause() string {
	switch s {
	case SharingWith:
		return "with sharing"
	case SharingWithout:
		return "without sharing"
	case SharingInherit:
		return ""
	default:
		return "with sharing"
	}
}

// Controller holds the options of a page's Apex controller
type Controller struct {
	APIName   string  `koanf:"apiName" yaml:"apiName"`
	Sharing   Sharing `koanf:"sharing" yaml:"sharing"`
	TestClass bool    `koanf:"testClass" yaml:"testClass"`
}
