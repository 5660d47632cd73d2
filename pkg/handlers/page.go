package handlers

import (
	"strings"

	"github.com/jdcrensh/sftemplate/pkg/manifest"
	"github.com/jdcrensh/sftemplate/pkg/options"
	"github.com/jdcrensh/sftemplate/pkg/types"
)

// pageDefaults returns the defaults shared by the page kinds. The controller
// defaults derive from the page's apiName as the caller resolved it.
func pageDefaults(in *options.Set) map[string]interface{} {
	apiName := in.String(options.KeyAPIName)
	if apiName == "" {
		apiName = DefaultAPIName
	}
	return map[string]interface{}{
		options.KeyAPIName:            apiName,
		options.KeyMobile:             false,
		options.KeyTitle:              "Visualforce App",
		options.KeyUnsupportedBrowser: false,
	}
}

// withoutControllerFlag drops a bare boolean controller value so that the
// derived controller table takes its place
func withoutControllerFlag(in *options.Set, dropFalse bool) *options.Set {
	v, ok := in.Get(options.KeyController).(bool)
	if !ok || (!v && !dropFalse) {
		return in
	}
	out := in.Clone()
	out.Delete(options.KeyController)
	return out
}

func handleSinglePageApp(s *Session, pkg *manifest.Package, in *options.Set) error {
	in = withoutControllerFlag(in, false)

	defaults := pageDefaults(in)
	if !in.Disabled(options.KeyController) {
		defaults[options.KeyController] = map[string]interface{}{
			"apiName":   defaults[options.KeyAPIName].(string) + "Controller",
			"sharing":   string(types.SharingWith),
			"testClass": true,
		}
	}

	p, err := prepare(types.KindSinglePageApp, in, defaults)
	if err != nil {
		return err
	}
	if _, err := p.destination(PagesDir, p.opts.String(options.KeyAPIName)+".page"); err != nil {
		return err
	}
	s.emit(p.artifact(nil))

	meta := p.meta()
	if meta {
		if err := s.Run(types.KindApexPageMeta, pkg, p.opts); err != nil {
			return err
		}
	}
	if p.opts.Exists(options.KeyController) && !p.opts.Disabled(options.KeyController) {
		if err := s.Run(types.KindSinglePageAppController, pkg, p.opts); err != nil {
			return err
		}
	}
	if meta {
		if err := s.Run(types.KindPackage, pkg, p.opts); err != nil {
			return err
		}
		if err := s.Run(types.KindStaticResourceMeta, pkg, p.opts); err != nil {
			return err
		}
	}
	return nil
}

func handleSinglePageAppDev(s *Session, pkg *manifest.Package, in *options.Set) error {
	in = withoutControllerFlag(in, true)

	defaults := pageDefaults(in)
	defaults[options.KeyController] = map[string]interface{}{
		"apiName": defaults[options.KeyAPIName].(string) + "Controller",
	}

	p, err := prepare(types.KindSinglePageAppDev, in, defaults)
	if err != nil {
		return err
	}
	if _, err := p.destination("", p.opts.String(options.KeyAPIName)+".page"); err != nil {
		return err
	}
	s.emit(p.artifact(nil))
	return nil
}

func handleApexPageMeta(s *Session, pkg *manifest.Package, in *options.Set) error {
	p, err := prepare(types.KindApexPageMeta, in, nil)
	if err != nil {
		return err
	}

	base, err := p.baseName()
	if err != nil {
		return err
	}
	if _, err := p.destination(PagesDir, base+"-meta.xml"); err != nil {
		return err
	}

	pkg.Add(manifest.TypeApexPage, strings.TrimSuffix(base, ".page"))
	s.emit(p.artifact(nil))
	return nil
}
