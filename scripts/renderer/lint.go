package renderer

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Lint checks that rendered content is well formed for the syntax of the
// template it came from. Only YAML is checked.
func Lint(name TemplateName, content string) error {
	if name.Format() != FormatYAML {
		return nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return errors.Wrapf(err, "rendered %q is not valid YAML", name)
	}
	return nil
}
