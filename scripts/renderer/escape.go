package renderer

import (
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	phpSingleQuoted = strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	iniDoubleQuoted = strings.NewReplacer(`\`, `\\`, `"`, `\"`)
)

// PHPString returns value as a PHP single-quoted string literal.
func PHPString(value string) string {
	return "'" + phpSingleQuoted.Replace(value) + "'"
}

// INIString returns value as a double-quoted INI value.
func INIString(value string) string {
	return `"` + iniDoubleQuoted.Replace(value) + `"`
}

// YAMLScalar encodes value as a single-line YAML string scalar. Plain style
// is kept whenever it reads back as the same string.
func YAMLScalar(value string) (string, error) {
	var node yaml.Node
	node.SetString(value)
	if strings.ContainsAny(value, "\r\n") {
		node.Style = yaml.DoubleQuotedStyle
	}
	out, err := yaml.Marshal(&node)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}

// YAMLPort leaves numeric ports bare so they load as integers.
func YAMLPort(port string) (string, error) {
	if port != "" && strings.Trim(port, "0123456789") == "" {
		return port, nil
	}
	return YAMLScalar(port)
}
