package plugin

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/jdcrensh/sftemplate/pkg/archive"
	"github.com/jdcrensh/sftemplate/pkg/compiler"
	"github.com/jdcrensh/sftemplate/pkg/errors"
	"github.com/jdcrensh/sftemplate/pkg/handlers"
	"github.com/jdcrensh/sftemplate/pkg/logging"
	"github.com/jdcrensh/sftemplate/pkg/manifest"
	"github.com/jdcrensh/sftemplate/pkg/options"
	"github.com/jdcrensh/sftemplate/pkg/types"
	"github.com/mitchellh/copystructure"
	"github.com/spf13/afero"
)

const (
	// DefaultAPIVersion is the metadata API version used when none is given
	DefaultAPIVersion = "36.0"

	// XMLNamespace is the namespace of every generated metadata document
	XMLNamespace = "http://soap.sforce.com/2006/04/metadata"

	// ArchiveHookName names the after-emit hook that zips distDir
	ArchiveHookName = "static-resource-archive"
)

// Defaults returns the plugin-wide option defaults
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		options.KeyAPIVersion:   DefaultAPIVersion,
		options.KeyMeta:         true,
		options.KeyXMLNamespace: XMLNamespace,
	}
}

// Host is the build the plugin applies to
type Host interface {
	handlers.Emitter
	OnAfterEmit(name string, h compiler.Hook)
}

// Plugin renders the configured descriptors into a build
type Plugin struct {
	global *options.Set
	files  []types.FileDescriptor
	fs     afero.Fs
	pkg    *manifest.Package
}

// Option configures a Plugin
type Option func(*Plugin)

// WithFs sets the filesystem the archive step reads from and writes to
func WithFs(fs afero.Fs) Option {
	return func(p *Plugin) {
		p.fs = fs
	}
}

// New validates raw options and builds a plugin. Nothing is written until the
// plugin is applied to a build; every validation failure is a configuration
// error.
func New(raw map[string]interface{}, opts ...Option) (*Plugin, error) {
	logger := logging.GetLogger("plugin")

	copied, err := copystructure.Copy(raw)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "failed to copy options")
	}
	values, _ := copied.(map[string]interface{})

	if s, _ := values[options.KeyOutputDir].(string); s == "" {
		return nil, errors.New(errors.ErrConfigValid, `option "outputDir" is required`)
	}

	files, err := descriptors(values[options.KeyFiles])
	if err != nil {
		return nil, err
	}
	delete(values, options.KeyFiles)
	normalizeAPIVersion(values)

	global, err := options.NewBuilder().
		With("defaults", Defaults()).
		With("caller", values).
		Build()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "failed to resolve options")
	}

	p := &Plugin{
		global: global,
		files:  files,
		fs:     afero.NewOsFs(),
		pkg:    manifest.New(),
	}
	for _, opt := range opts {
		opt(p)
	}

	logger.Debug().
		Str("outputDir", global.String(options.KeyOutputDir)).
		Int("files", len(files)).
		Bool("meta", global.Bool(options.KeyMeta)).
		Msg("Plugin configured")

	return p, nil
}

// descriptors validates the files option
func descriptors(v interface{}) ([]types.FileDescriptor, error) {
	var entries []interface{}
	switch list := v.(type) {
	case []interface{}:
		entries = list
	case []map[string]interface{}:
		for _, m := range list {
			entries = append(entries, m)
		}
	default:
		return nil, errors.New(errors.ErrConfigValid, `option "files" must be an array`)
	}

	out := make([]types.FileDescriptor, 0, len(entries))
	for i, entry := range entries {
		fields, ok := entry.(map[string]interface{})
		if !ok {
			return nil, errors.Newf(errors.ErrConfigValid, "files[%d] must be a table", i).
				WithDetail("index", i)
		}

		name, _ := fields[options.KeyTemplate].(string)
		if name == "" {
			return nil, errors.Newf(errors.ErrConfigValid, `files[%d] is missing "template"`, i).
				WithDetail("index", i)
		}

		kind, err := types.ParseKind(name)
		if err != nil || !handlers.Has(kind) {
			return nil, errors.Newf(errors.ErrConfigValid, "files[%d] names unknown template %q", i, name).
				WithDetail("index", i).
				WithDetail("template", name)
		}

		normalizeAPIVersion(fields)
		out = append(out, types.FileDescriptor{Kind: kind, Fields: fields})
	}
	return out, nil
}

// normalizeAPIVersion keeps apiVersion a string when a config format decoded
// it as a number
func normalizeAPIVersion(m map[string]interface{}) {
	switch v := m[options.KeyAPIVersion].(type) {
	case float64:
		m[options.KeyAPIVersion] = formatVersion(v, 64)
	case float32:
		m[options.KeyAPIVersion] = formatVersion(float64(v), 32)
	case int:
		m[options.KeyAPIVersion] = fmt.Sprintf("%d.0", v)
	case int64:
		m[options.KeyAPIVersion] = fmt.Sprintf("%d.0", v)
	}
}

// formatVersion prints v without rounding, keeping a ".0" on whole numbers
func formatVersion(v float64, bitSize int) string {
	s := strconv.FormatFloat(v, 'f', -1, bitSize)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Options returns the resolved global options
func (p *Plugin) Options() *options.Set {
	return p.global
}

// Files returns the validated descriptors
func (p *Plugin) Files() []types.FileDescriptor {
	return p.files
}

// Package returns the accumulator filled while the plugin is applied
func (p *Plugin) Package() *manifest.Package {
	return p.pkg
}

// Apply dispatches every descriptor into the build and, when distDir is
// set, registers the archive step as an after-emit hook
func (p *Plugin) Apply(h Host) error {
	if err := handlers.NewDispatcher(p.global).Dispatch(h, p.pkg, p.files); err != nil {
		return err
	}

	distDir := p.global.String(options.KeyDistDir)
	if distDir == "" {
		return nil
	}

	dest, err := p.ArchivePath()
	if err != nil {
		return err
	}
	filter := archive.IgnoreFilter(p.global.Strings(options.KeyArchiveIgnore))

	h.OnAfterEmit(ArchiveHookName, func(ctx context.Context) error {
		logger := logging.WithFields(map[string]interface{}{
			"component": "archive",
			"distDir":   distDir,
			"dest":      dest,
		})
		done := logging.LogOperationStart(logger, ArchiveHookName)
		defer done()

		res, err := archive.Zip(ctx, p.fs, distDir, dest, filter)
		if err != nil {
			return err
		}
		logger.Info().
			Int("entries", res.Entries).
			Int64("bytes", res.Size).
			Msg("Static resource archived")
		return nil
	})
	return nil
}

// ArchiveName returns the static resource the archive is written for. The
// last SinglePageApp descriptor decides, resolving its apiName the way its
// page does, so the bundle matches the $Resource the page references.
// Without such a descriptor the global apiName is used.
func (p *Plugin) ArchiveName() string {
	apiName := p.global.String(options.KeyAPIName)
	for i := len(p.files) - 1; i >= 0; i-- {
		if p.files[i].Kind != types.KindSinglePageApp {
			continue
		}
		if s, _ := p.files[i].Fields[options.KeyAPIName].(string); s != "" {
			apiName = s
		}
		break
	}
	if apiName == "" {
		apiName = handlers.DefaultAPIName
	}
	return apiName
}

// ArchivePath returns where the static resource archive is written
func (p *Plugin) ArchivePath() (string, error) {
	apiName := p.ArchiveName()

	dest, err := securejoin.SecureJoin(
		p.global.String(options.KeyOutputDir),
		filepath.Join(handlers.StaticResourcesDir, apiName+".resource"),
	)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrArchive, "failed to resolve archive path for %s", apiName)
	}
	return dest, nil
}
