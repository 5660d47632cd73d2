package handlers

import (
	"strings"

	"github.com/jdcrensh/sftemplate/pkg/errors"
	"github.com/jdcrensh/sftemplate/pkg/manifest"
	"github.com/jdcrensh/sftemplate/pkg/options"
	"github.com/jdcrensh/sftemplate/pkg/types"
)

func controllerOf(p *prepared) (types.Controller, error) {
	var ctrl types.Controller
	if !p.opts.Exists(options.KeyController) || p.opts.Disabled(options.KeyController) {
		return ctrl, errors.Newf(errors.ErrConfigValid, `template %s requires option "controller"`, p.kind)
	}
	if err := p.opts.Unmarshal(options.KeyController, &ctrl); err != nil {
		return ctrl, errors.Wrapf(err, errors.ErrConfigValid, `invalid option "controller" for template %s`, p.kind)
	}
	if ctrl.APIName == "" {
		return ctrl, errors.Newf(errors.ErrConfigValid, `template %s requires option "controller.apiName"`, p.kind)
	}
	return ctrl, nil
}

func handleController(s *Session, pkg *manifest.Package, in *options.Set) error {
	p, err := prepare(types.KindSinglePageAppController, in, nil)
	if err != nil {
		return err
	}

	ctrl, err := controllerOf(p)
	if err != nil {
		return err
	}
	if err := p.opts.Set(options.KeyController+"."+options.KeySharingClause, ctrl.Sharing.Clause()); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to record sharing clause")
	}
	if _, err := p.destination(ClassesDir, ctrl.APIName+".cls"); err != nil {
		return err
	}
	s.emit(p.artifact(nil))

	if p.meta() {
		if err := s.Run(types.KindApexClassMeta, pkg, p.opts); err != nil {
			return err
		}
	}
	if ctrl.TestClass {
		return s.Run(types.KindSinglePageAppControllerTest, pkg, p.opts)
	}
	return nil
}

func handleControllerTest(s *Session, pkg *manifest.Package, in *options.Set) error {
	p, err := prepare(types.KindSinglePageAppControllerTest, in, nil)
	if err != nil {
		return err
	}

	ctrl, err := controllerOf(p)
	if err != nil {
		return err
	}
	if _, err := p.destination(ClassesDir, ctrl.APIName+"Test.cls"); err != nil {
		return err
	}
	s.emit(p.artifact(nil))

	if p.meta() {
		return s.Run(types.KindApexClassMeta, pkg, p.opts)
	}
	return nil
}

func handleApexClassMeta(s *Session, pkg *manifest.Package, in *options.Set) error {
	p, err := prepare(types.KindApexClassMeta, in, nil)
	if err != nil {
		return err
	}

	base, err := p.baseName()
	if err != nil {
		return err
	}
	if _, err := p.destination(ClassesDir, base+"-meta.xml"); err != nil {
		return err
	}

	pkg.Add(manifest.TypeApexClass, strings.TrimSuffix(base, ".cls"))
	s.emit(p.artifact(nil))
	return nil
}
