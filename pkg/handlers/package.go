package handlers

import (
	"github.com/jdcrensh/sftemplate/pkg/manifest"
	"github.com/jdcrensh/sftemplate/pkg/options"
	"github.com/jdcrensh/sftemplate/pkg/types"
)

// handlePackage emits the manifest with the accumulator itself as its data.
// The template reads it when the artifact is written, after every handler
// has registered its members. A later Package emission rewrites the same
// file.
func handlePackage(s *Session, pkg *manifest.Package, in *options.Set) error {
	p, err := prepare(types.KindPackage, in, nil)
	if err != nil {
		return err
	}
	if _, err := p.destination("", "package.xml"); err != nil {
		return err
	}

	s.emit(p.artifact(map[string]interface{}{
		options.KeyPackage: pkg,
	}))
	return nil
}

func handleStaticResourceMeta(s *Session, pkg *manifest.Package, in *options.Set) error {
	p, err := prepare(types.KindStaticResourceMeta, in, map[string]interface{}{
		options.KeyAPIName: DefaultAPIName,
	})
	if err != nil {
		return err
	}

	apiName := p.opts.String(options.KeyAPIName)
	if _, err := p.destination(StaticResourcesDir, apiName+".resource-meta.xml"); err != nil {
		return err
	}

	pkg.Add(manifest.TypeStaticResource, apiName)
	s.emit(p.artifact(nil))
	return nil
}
