package templates

import (
	"embed"
	"io/fs"
	"path"

	"github.com/jdcrensh/sftemplate/pkg/types"
)

// Dir is the directory of the built-in templates inside FS. Built-in template
// paths are always relative to it.
const Dir = "templates"

//go:embed templates
var FS embed.FS

var builtin = map[types.Kind]string{
	types.KindPackage:                     "package.xml.tmpl",
	types.KindSinglePageApp:               path.Join("ApexPage", "SinglePageApp.page.tmpl"),
	types.KindSinglePageAppDev:            path.Join("ApexPage", "SinglePageAppDev.page.tmpl"),
	types.KindApexPageMeta:                path.Join("ApexPage", "meta.xml.tmpl"),
	types.KindSinglePageAppController:     path.Join("ApexClass", "SinglePageAppController.cls.tmpl"),
	types.KindSinglePageAppControllerTest: path.Join("ApexClass", "SinglePageAppControllerTest.cls.tmpl"),
	types.KindApexClassMeta:               path.Join("ApexClass", "meta.xml.tmpl"),
	types.KindStaticResourceMeta:          path.Join("StaticResource", "meta.xml.tmpl"),
}

// For returns the built-in template of a kind
func For(k types.Kind) (types.TemplateRef, bool) {
	p, ok := builtin[k]
	if !ok {
		return types.TemplateRef{}, false
	}
	return types.TemplateRef{Path: path.Join(Dir, p), Builtin: true}, true
}

// Read returns the content of a built-in template
func Read(p string) ([]byte, error) {
	return fs.ReadFile(FS, p)
}

// List returns the paths of all built-in templates
func List() ([]string, error) {
	var out []string
	err := fs.WalkDir(FS, Dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			out = append(out, p)
		}
		return nil
	})
	return out, err
}
