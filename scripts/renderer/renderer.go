package renderer

import (
	"bytes"
	"embed"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pkg/errors"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// parsed holds one *template.Template per TemplateName.
var parsed sync.Map

func funcMap() template.FuncMap {
	fm := sprig.TxtFuncMap()
	fm["phpString"] = PHPString
	fm["yamlScalar"] = YAMLScalar
	fm["yamlPort"] = YAMLPort
	fm["iniString"] = INIString
	return fm
}

func lookup(name TemplateName) (*template.Template, error) {
	if t, ok := parsed.Load(name); ok {
		return t.(*template.Template), nil
	}

	t, err := template.New(string(name)).
		Option("missingkey=error").
		Funcs(funcMap()).
		ParseFS(templatesFS, "templates/"+string(name))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing template %q", name)
	}

	actual, _ := parsed.LoadOrStore(name, t)
	return actual.(*template.Template), nil
}

// Render executes the named template against data. A field or key missing
// from data is an error rather than an empty string.
func Render(name TemplateName, data any) (string, error) {
	t, err := lookup(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", errors.Wrapf(err, "executing template %q", name)
	}
	return buf.String(), nil
}
