package render

import (
	"io"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/wippyai/hexlayout"
	"github.com/wippyai/hexlayout/errors"
	"github.com/wippyai/hexlayout/report"
)

// Renderer writes a report.
type Renderer interface {
	Render(w io.Writer, r *report.Report) error
}

// Template renders a report with text/template. The report is the template
// data; sprig functions and the helpers of Context are available.
type Template struct {
	tmpl *template.Template
	img  hexlayout.Image
}

var _ Renderer = (*Template)(nil)

func baseFuncs() template.FuncMap {
	fm := sprig.TxtFuncMap()
	for name, fn := range NewContext(nil, nil).FuncMap() {
		fm[name] = fn
	}
	return fm
}

// ParseTemplate parses text. Helpers read from img when the template runs.
func ParseTemplate(name, text string, img hexlayout.Image) (*Template, error) {
	tmpl, err := template.New(name).
		Funcs(baseFuncs()).
		Option("missingkey=error").
		Parse(text)
	if err != nil {
		return nil, errors.Render("parse template "+name, err)
	}
	return &Template{tmpl: tmpl, img: img}, nil
}

// LoadTemplate reads and parses a template file.
func LoadTemplate(fs afero.Fs, name string, img hexlayout.Image) (*Template, error) {
	data, err := afero.ReadFile(fs, name)
	if err != nil {
		return nil, errors.New(errors.PhaseLoad, errors.KindNotFound).
			Detail("template %q not found", name).
			Cause(err).
			Build()
	}
	return ParseTemplate(name, string(data), img)
}

// Render executes the template with r as data.
func (t *Template) Render(w io.Writer, r *report.Report) error {
	tmpl, err := t.tmpl.Clone()
	if err != nil {
		return errors.Render("clone template "+t.tmpl.Name(), err)
	}
	tmpl.Funcs(NewContext(t.img, r).FuncMap())
	Logger().Debug("executing template",
		zap.String("template", t.tmpl.Name()),
		zap.Int("values", len(r.List)))
	if err := tmpl.Execute(w, r); err != nil {
		return errors.Render("execute template "+t.tmpl.Name(), err)
	}
	return nil
}
