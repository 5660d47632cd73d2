package types

import (
	"fmt"
)

// Kind names one of the built-in artifact handlers. A descriptor selects its
// handler through the "template" field.
type Kind string

const (
	// KindPackage renders package.xml from the accumulated members
	KindPackage Kind = "Package"

	// KindSinglePageApp renders a Visualforce page and cascades to its
	// metadata, controller, manifest and static resource metadata
	KindSinglePageApp Kind = "SinglePageApp"

	// KindSinglePageAppDev renders a development page into the output root
	// with no cascade
	KindSinglePageAppDev Kind = "SinglePageAppDev"

	// KindApexPageMeta renders the -meta.xml companion of a page
	KindApexPageMeta Kind = "ApexPageMeta"

	// KindSinglePageAppController renders the page's Apex controller class
	KindSinglePageAppController Kind = "SinglePageAppController"

	// KindSinglePageAppControllerTest renders the controller's test class
	KindSinglePageAppControllerTest Kind = "SinglePageAppControllerTest"

	// KindApexClassMeta renders the -meta.xml companion of an Apex class
	KindApexClassMeta Kind = "ApexClassMeta"

	// KindStaticResourceMeta renders the -meta.xml companion of the zipped
	// static resource
	KindStaticResourceMeta Kind = "StaticResourceMeta"
)

var kindDescriptions = map[Kind]string{
	KindPackage:                     "package.xml manifest listing every registered member",
	KindSinglePageApp:               "Visualforce page with metadata, controller and manifest",
	KindSinglePageAppDev:            "Visualforce page loading assets from a local dev server",
	KindApexPageMeta:                "ApexPage -meta.xml companion",
	KindSinglePageAppController:     "Apex controller class for a page",
	KindSinglePageAppControllerTest: "Apex test class for a page controller",
	KindApexClassMeta:               "ApexClass -meta.xml companion",
	KindStaticResourceMeta:          "StaticResource -meta.xml companion",
}

// Kinds returns every known kind in a stable order
func Kinds() []Kind {
	return []Kind{
		KindSinglePageApp,
		KindSinglePageAppDev,
		KindSinglePageAppController,
		KindSinglePageAppControllerTest,
		KindApexPageMeta,
		KindApexClassMeta,
		KindStaticResourceMeta,
		KindPackage,
	}
}

// ParseKind converts a descriptor's template name into a Kind
func ParseKind(name string) (Kind, error) {
	k := Kind(name)
	if !k.Valid() {
		return "", fmt.Errorf("unknown template %q", name)
	}
	return k, nil
}

// Valid reports whether k is one of the known kinds
func (k Kind) Valid() bool {
	_, ok := kindDescriptions[k]
	return ok
}

// Description returns a one-line summary of what the kind emits
func (k Kind) Description() string {
	return kindDescriptions[k]
}

func (k Kind) String() string {
	return string(k)
}
