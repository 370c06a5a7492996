package renderer

import (
	"strings"

	"github.com/sevein/atbox/config/profile"
)

// TemplateName represents a known template filename.
type TemplateName string

const (
	TplGearman   TemplateName = "gearman.yml.tmpl"
	TplApp       TemplateName = "app.yml.tmpl"
	TplFactories TemplateName = "factories.yml.tmpl"
	TplSearch    TemplateName = "search.yml.tmpl"
	TplDatabase  TemplateName = "config.php.tmpl"
	TplPHPIni    TemplateName = "php.ini.tmpl"
	TplFpmPool   TemplateName = "atom.conf.tmpl"
)

// Format is the syntax of a rendered template.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatPHP  Format = "php"
	FormatINI  Format = "ini"
)

// Format derives the output syntax from the template filename.
func (n TemplateName) Format() Format {
	base := strings.TrimSuffix(string(n), ".tmpl")
	switch {
	case strings.HasSuffix(base, ".yml"), strings.HasSuffix(base, ".yaml"):
		return FormatYAML
	case strings.HasSuffix(base, ".php"):
		return FormatPHP
	default:
		return FormatINI
	}
}

// GearmanData holds the data required by TplGearman. The worker is never
// started; AtoM only checks that the file exists.
type GearmanData struct {
	Server string
}

type AppData struct {
	CacheDir string
	ReadOnly bool
}

type FactoriesData struct {
	Environments   []string
	SessionName    string
	CookieHTTPOnly bool
	CookieSecure   bool
}

type SearchData struct {
	Host string
	Port string
}

// DatabaseData holds the propel connection settings for TplDatabase.
// Values are embedded with phpString.
type DatabaseData struct {
	DSN      string
	Username string
	Password string
}

type PHPIniData struct {
	MaxExecutionTime int
	MemoryLimit      string
	Timezone         string
}

// FpmPoolData holds the data required by TplFpmPool.
type FpmPoolData struct {
	ErrorLog    string
	AccessLog   string
	User        string
	Group       string
	ReadOnlyEnv string
	Pool        profile.Pool
}
