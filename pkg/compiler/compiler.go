package compiler

import (
	"context"
	"sync"
	"time"

	"github.com/jdcrensh/sftemplate/pkg/errors"
	"github.com/jdcrensh/sftemplate/pkg/logging"
	"github.com/jdcrensh/sftemplate/pkg/types"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Writer writes one artifact to its destination
type Writer interface {
	Write(a types.Artifact) error
}

// Hook runs once every artifact has been written
type Hook func(ctx context.Context) error

// Options contains configuration for the compiler
type Options struct {
	Writer Writer
	// DryRun records artifacts and hooks without writing or running them
	DryRun bool
	// Logger defaults to the "compiler" component logger
	Logger *zerolog.Logger
}

// Stats summarizes one build
type Stats struct {
	// Emitted counts artifacts in emission order, including rewrites of the
	// same destination
	Emitted int
	// Files lists distinct destinations in first-emission order
	Files    []string
	Hooks    int
	Duration time.Duration
	DryRun   bool
}

type namedHook struct {
	name string
	fn   Hook
}

// Compiler models one build: handlers queue artifacts during the emission
// phase, Run writes them in order and then awaits the after-emit hooks
type Compiler struct {
	writer Writer
	dryRun bool
	logger zerolog.Logger

	mu    sync.Mutex
	jobs  []types.Artifact
	hooks []namedHook
	ran   bool
}

// New creates a new compiler instance
func New(opts Options) *Compiler {
	logger := logging.GetLogger("compiler")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	return &Compiler{
		writer: opts.Writer,
		dryRun: opts.DryRun,
		logger: logger,
	}
}

// Emit queues an artifact for the emission phase
func (c *Compiler) Emit(a types.Artifact) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jobs = append(c.jobs, a)
}

// OnAfterEmit registers a hook that runs after every artifact is written
func (c *Compiler) OnAfterEmit(name string, h Hook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, namedHook{name: name, fn: h})
}

// Artifacts returns the queued artifacts in emission order
func (c *Compiler) Artifacts() []types.Artifact {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]types.Artifact(nil), c.jobs...)
}

// Hooks returns the names of the registered after-emit hooks
func (c *Compiler) Hooks() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.hooks))
	for _, h := range c.hooks {
		names = append(names, h.name)
	}
	return names
}

// Run writes every queued artifact in order, stopping at the first failure,
// then runs the after-emit hooks and waits for all of them. A compiler runs
// once.
func (c *Compiler) Run(ctx context.Context) (*Stats, error) {
	c.mu.Lock()
	if c.ran {
		c.mu.Unlock()
		return nil, errors.New(errors.ErrInternal, "compiler has already run")
	}
	c.ran = true
	jobs := append([]types.Artifact(nil), c.jobs...)
	hooks := append([]namedHook(nil), c.hooks...)
	c.mu.Unlock()

	start := time.Now()
	stats := &Stats{DryRun: c.dryRun}
	seen := make(map[string]bool)

	for _, a := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !c.dryRun {
			if c.writer == nil {
				return nil, errors.New(errors.ErrInternal, "compiler has no writer")
			}
			if err := c.writer.Write(a); err != nil {
				c.logger.Error().
					Err(err).
					Str("kind", a.Kind.String()).
					Str("filename", a.Filename).
					Msg("Emission failed")
				return nil, err
			}
		}

		stats.Emitted++
		if !seen[a.Filename] {
			seen[a.Filename] = true
			stats.Files = append(stats.Files, a.Filename)
		}
	}

	c.logger.Info().
		Int("emitted", stats.Emitted).
		Int("files", len(stats.Files)).
		Bool("dry_run", c.dryRun).
		Msg("Emission phase complete")

	if !c.dryRun && len(hooks) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		for _, h := range hooks {
			h := h
			g.Go(func() error {
				c.logger.Debug().Str("hook", h.name).Msg("Running after-emit hook")
				if err := h.fn(gctx); err != nil {
					c.logger.Error().Err(err).Str("hook", h.name).Msg("After-emit hook failed")
					return err
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		stats.Hooks = len(hooks)
	}

	stats.Duration = time.Since(start)
	c.logger.Info().
		Int("hooks", stats.Hooks).
		Dur("duration", stats.Duration).
		Msg("Build complete")

	return stats, nil
}
