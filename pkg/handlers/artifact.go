package handlers

import (
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/jdcrensh/sftemplate/pkg/errors"
	"github.com/jdcrensh/sftemplate/pkg/options"
	"github.com/jdcrensh/sftemplate/pkg/templates"
	"github.com/jdcrensh/sftemplate/pkg/types"
)

// Output subdirectories of outputDir
const (
	PagesDir           = "pages"
	ClassesDir         = "classes"
	StaticResourcesDir = "staticResources"
)

// DefaultAPIName is used for pages and static resources without an apiName
const DefaultAPIName = "SinglePageApp"

// prepared is the resolved state every handler starts from
type prepared struct {
	kind     types.Kind
	opts     *options.Set
	template types.TemplateRef
}

// prepare layers the kind defaults beneath the incoming set and resolves the
// template. The descriptor's template name and any templateFile override are
// consumed here and never reach a cascaded handler.
func prepare(k types.Kind, in *options.Set, defaults map[string]interface{}) (*prepared, error) {
	opts, err := options.NewBuilder().
		With("kind", defaults).
		WithSet("caller", in).
		Build()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigValid, "failed to resolve %s options", k)
	}

	ref, ok := templates.For(k)
	if !ok {
		return nil, errors.Newf(errors.ErrUnknownTemplate, "no built-in template for %q", k)
	}
	if custom := opts.String(options.KeyTemplateFile); custom != "" {
		ref = types.TemplateRef{Path: custom}
	}

	opts.Delete(options.KeyTemplate)
	opts.Delete(options.KeyTemplateFile)

	return &prepared{kind: k, opts: opts, template: ref}, nil
}

// destination joins name under outputDir/subdir without letting name escape
// outputDir, and records it as the set's filename
func (p *prepared) destination(subdir, name string) (string, error) {
	root := p.opts.String(options.KeyOutputDir)
	if root == "" {
		return "", errors.New(errors.ErrConfigValid, `option "outputDir" is required`)
	}

	dest, err := securejoin.SecureJoin(root, filepath.Join(subdir, name))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve destination for %s", name)
	}

	if err := p.opts.Set(options.KeyFilename, dest); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to record filename")
	}
	return dest, nil
}

// meta reports whether metadata companions are emitted for this set
func (p *prepared) meta() bool {
	return p.opts.Bool(options.KeyMeta)
}

// artifact snapshots the set into an artifact. extra values are only visible
// to this artifact's template.
func (p *prepared) artifact(extra map[string]interface{}) types.Artifact {
	data := p.opts.Map()
	for k, v := range extra {
		data[k] = v
	}
	data["inject"] = false

	return types.Artifact{
		Kind:     p.kind,
		Template: p.template,
		Filename: p.opts.String(options.KeyFilename),
		Inject:   false,
		Data:     data,
	}
}

// baseName returns the last element of the set's filename
func (p *prepared) baseName() (string, error) {
	filename := p.opts.String(options.KeyFilename)
	if filename == "" {
		return "", errors.Newf(errors.ErrConfigValid, `template %s requires option "filename"`, p.kind)
	}
	return filepath.Base(filename), nil
}
