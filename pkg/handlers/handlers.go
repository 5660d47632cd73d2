package handlers

import (
	"github.com/jdcrensh/sftemplate/pkg/manifest"
	"github.com/jdcrensh/sftemplate/pkg/options"
	"github.com/jdcrensh/sftemplate/pkg/registry"
	"github.com/jdcrensh/sftemplate/pkg/types"
)

// Emitter receives the artifacts produced by handlers
type Emitter interface {
	Emit(a types.Artifact)
}

// HandlerFunc processes one resolved option set. The accumulator is passed
// explicitly so every registration is visible at the call site.
type HandlerFunc func(s *Session, pkg *manifest.Package, in *options.Set) error

var handlerRegistry = registry.New[types.Kind, HandlerFunc]()

func init() {
	registry.MustRegister(handlerRegistry, types.KindPackage, handlePackage)
	registry.MustRegister(handlerRegistry, types.KindSinglePageApp, handleSinglePageApp)
	registry.MustRegister(handlerRegistry, types.KindSinglePageAppDev, handleSinglePageAppDev)
	registry.MustRegister(handlerRegistry, types.KindApexPageMeta, handleApexPageMeta)
	registry.MustRegister(handlerRegistry, types.KindSinglePageAppController, handleController)
	registry.MustRegister(handlerRegistry, types.KindSinglePageAppControllerTest, handleControllerTest)
	registry.MustRegister(handlerRegistry, types.KindApexClassMeta, handleApexClassMeta)
	registry.MustRegister(handlerRegistry, types.KindStaticResourceMeta, handleStaticResourceMeta)
}

// Has reports whether a handler is registered for k
func Has(k types.Kind) bool {
	return handlerRegistry.Has(k)
}

// Kinds returns the kinds with a registered handler, sorted by name
func Kinds() []types.Kind {
	return handlerRegistry.List()
}
