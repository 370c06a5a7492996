// Package renderer loads the embedded configuration templates under
// scripts/renderer/templates/ and renders them with sprig functions plus a
// few escaping helpers, one per target syntax:
//
//   - phpString: a PHP single-quoted string literal, quotes included
//   - yamlScalar: a YAML scalar, quoted only when plain style would change it
//   - yamlPort: a bare port when numeric, otherwise yamlScalar
//   - iniString: a double-quoted INI value
//
// Every value coming from the environment goes through one of these before
// it is embedded.
//
// Example:
//
//	out, err := renderer.Render(renderer.TplSearch, renderer.SearchData{
//	    Host: "elasticsearch",
//	    Port: "9200",
//	})
package renderer
