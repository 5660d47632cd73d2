package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/jdcrensh/sftemplate/pkg/errors"
	"github.com/jdcrensh/sftemplate/pkg/logging"
	"github.com/jdcrensh/sftemplate/pkg/manifest"
	"github.com/jdcrensh/sftemplate/pkg/templates"
	"github.com/jdcrensh/sftemplate/pkg/types"
	"github.com/spf13/afero"
)

// Renderer turns artifacts into files. Built-in templates come from the
// embedded template directory, caller templates from the filesystem.
type Renderer struct {
	fs    afero.Fs
	funcs template.FuncMap
}

// New creates a Renderer that reads caller templates from and writes
// artifacts to fs
func New(fs afero.Fs) *Renderer {
	return &Renderer{
		fs:    fs,
		funcs: sprig.TxtFuncMap(),
	}
}

// Fs returns the filesystem the renderer writes to
func (r *Renderer) Fs() afero.Fs {
	return r.fs
}

// Render executes the artifact's template with its data. Output destined for
// an .xml file must be well-formed and is re-indented.
func (r *Renderer) Render(a types.Artifact) ([]byte, error) {
	logger := logging.GetLogger("render")

	src, err := r.load(a.Template)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(filepath.Base(a.Template.Path)).
		Funcs(r.funcs).
		Parse(string(src))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRender, "failed to parse template %s", a.Template).
			WithDetail("template", a.Template.String())
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, a.Data); err != nil {
		return nil, errors.Wrapf(err, errors.ErrRender, "failed to execute template %s", a.Template).
			WithDetail("template", a.Template.String()).
			WithDetail("filename", a.Filename)
	}

	out := buf.Bytes()
	if strings.EqualFold(filepath.Ext(a.Filename), ".xml") {
		normalized, err := manifest.Normalize(out)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrRender, "template %s produced malformed XML", a.Template).
				WithDetail("filename", a.Filename)
		}
		out = normalized
	}

	logger.Trace().
		Str("template", a.Template.String()).
		Str("filename", a.Filename).
		Int("bytes", len(out)).
		Msg("Template executed")

	return out, nil
}

// Write renders the artifact and writes it to its destination, creating
// parent directories as needed
func (r *Renderer) Write(a types.Artifact) error {
	out, err := r.Render(a)
	if err != nil {
		return err
	}

	dir := filepath.Dir(a.Filename)
	if err := r.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dir)
	}

	if err := afero.WriteFile(r.fs, a.Filename, out, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", a.Filename)
	}

	logger := logging.GetLogger("render")
	logger.Debug().
		Str("kind", a.Kind.String()).
		Str("filename", a.Filename).
		Msg("Artifact written")
	return nil
}

func (r *Renderer) load(ref types.TemplateRef) ([]byte, error) {
	var (
		src []byte
		err error
	)
	if ref.Builtin {
		src, err = templates.Read(ref.Path)
	} else {
		src, err = afero.ReadFile(r.fs, ref.Path)
	}
	if err != nil {
		code := errors.ErrRender
		if os.IsNotExist(err) {
			code = errors.ErrTemplateNotFound
		}
		return nil, errors.Wrapf(err, code, "failed to load template %s", ref)
	}
	return src, nil
}
