package handlers

import (
	"github.com/jdcrensh/sftemplate/pkg/errors"
	"github.com/jdcrensh/sftemplate/pkg/logging"
	"github.com/jdcrensh/sftemplate/pkg/manifest"
	"github.com/jdcrensh/sftemplate/pkg/options"
	"github.com/jdcrensh/sftemplate/pkg/types"
)

// Dispatcher routes each descriptor to the handler of its kind
type Dispatcher struct {
	global *options.Set
}

// NewDispatcher creates a dispatcher whose handlers see global beneath each
// descriptor's own fields
func NewDispatcher(global *options.Set) *Dispatcher {
	return &Dispatcher{global: global}
}

// Dispatch processes descriptors in order. Each descriptor gets a fresh
// option set built from the global options and its own fields, so values
// never leak from one descriptor into the next.
func (d *Dispatcher) Dispatch(em Emitter, pkg *manifest.Package, descriptors []types.FileDescriptor) error {
	logger := logging.GetLogger("handlers.dispatch")
	s := NewSession(em)

	for i, fd := range descriptors {
		in, err := options.NewBuilder().
			WithSet("global", d.global).
			With("descriptor", fd.Fields).
			Build()
		if err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "invalid options in files[%d]", i).
				WithDetail("index", i)
		}

		logger.Debug().
			Int("index", i).
			Str("template", fd.Kind.String()).
			Msg("Dispatching descriptor")

		if err := s.Run(fd.Kind, pkg, in); err != nil {
			return err
		}
	}

	logger.Debug().
		Int("descriptors", len(descriptors)).
		Int("emitted", s.Emitted()).
		Msg("Dispatch complete")
	return nil
}

// Session carries the emitter through one dispatch, including cascades
type Session struct {
	emitter Emitter
	emitted int
}

// NewSession creates a session that emits to em
func NewSession(em Emitter) *Session {
	return &Session{emitter: em}
}

// Emitted returns the number of artifacts emitted so far
func (s *Session) Emitted() int {
	return s.emitted
}

// Run invokes the handler of kind k
func (s *Session) Run(k types.Kind, pkg *manifest.Package, in *options.Set) error {
	h, err := handlerRegistry.Get(k)
	if err != nil {
		return errors.Wrapf(err, errors.ErrUnknownTemplate, "no handler for template %q", k).
			WithDetail("template", k.String())
	}
	return h(s, pkg, in)
}

func (s *Session) emit(a types.Artifact) {
	s.emitted++
	logger := logging.GetLogger("handlers")
	logger.Debug().
		Str("kind", a.Kind.String()).
		Str("template", a.Template.String()).
		Str("filename", a.Filename).
		Msg("Artifact emitted")
	s.emitter.Emit(a)
}
