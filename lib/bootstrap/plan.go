package bootstrap

import (
	"path/filepath"

	"github.com/sevein/atbox/config"
	"github.com/sevein/atbox/config/profile"
	"github.com/sevein/atbox/scripts/renderer"
)

// Values shared by every deployment. Profile-specific values live in
// config/profile.
const (
	GearmanServer            = "127.0.0.1:4730"
	CacheDir                 = "/tmp/atom/cache/app"
	SessionName              = "symfony"
	ElasticsearchDefaultPort = 9200
	MaxExecutionTime         = 120
	MemoryLimit              = "512M"
	Timezone                 = "UTC"
)

// SessionEnvironments get identical session storage settings.
var SessionEnvironments = []string{"prod", "dev"}

// Root selects which directory a relative path is resolved against.
type Root int

const (
	AtomRoot Root = iota
	EtcRoot
)

// Target is one generated file. It is always overwritten.
type Target struct {
	Root     Root
	RelPath  string
	Template renderer.TemplateName
	Data     any
}

// Seed is a shipped template copied to its canonical name on first run only.
type Seed struct {
	Source      string
	Destination string
}

// Seeds are relative to the AtoM tree. They are normally produced by the
// AtoM installer, which is not run in this deployment.
var Seeds = []Seed{
	{Source: "apps/qubit/config/settings.yml.tmpl", Destination: "apps/qubit/config/settings.yml"},
	{Source: "config/appChallenge.yml.tmpl", Destination: "config/appChallenge.yml"},
	{Source: "config/propel.ini.tmpl", Destination: "config/propel.ini"},
	{Source: "config/databases.yml.tmpl", Destination: "config/databases.yml"},
}

// Symfony's bundled web assets, linked into the document root.
const (
	SfAssetsTarget = "vendor/symfony/data/web/sf"
	SfAssetsLink   = "sf"
)

// Plan is everything a run will do, resolved against concrete directories.
type Plan struct {
	AtomDir     string
	EtcDir      string
	Profile     profile.Profile
	Search      config.HostPort
	Targets     []Target
	Seeds       []Seed
	SideEffects []SideEffect
}

// NewPlan derives the full list of targets from the environment and profile.
func NewPlan(env config.BootstrapEnv, prof profile.Profile) *Plan {
	search := config.SplitHostPort(env.ElasticsearchHost, ElasticsearchDefaultPort)

	p := &Plan{
		AtomDir: env.AtomDir,
		EtcDir:  env.EtcDir,
		Profile: prof,
		Search:  search,
		Seeds:   Seeds,
	}

	p.Targets = []Target{
		{AtomRoot, "apps/qubit/config/gearman.yml", renderer.TplGearman, renderer.GearmanData{
			Server: GearmanServer,
		}},
		{AtomRoot, "apps/qubit/config/app.yml", renderer.TplApp, renderer.AppData{
			CacheDir: CacheDir,
			ReadOnly: prof.ReadOnly,
		}},
		{AtomRoot, "apps/qubit/config/factories.yml", renderer.TplFactories, renderer.FactoriesData{
			Environments:   SessionEnvironments,
			SessionName:    SessionName,
			CookieHTTPOnly: true,
			CookieSecure:   true,
		}},
		{AtomRoot, "config/search.yml", renderer.TplSearch, renderer.SearchData{
			Host: search.Host,
			Port: search.Port,
		}},
		{AtomRoot, "config/config.php", renderer.TplDatabase, renderer.DatabaseData{
			DSN:      env.MysqlDSN,
			Username: env.MysqlUsername,
			Password: env.MysqlPassword,
		}},
		{EtcRoot, "php/php.ini", renderer.TplPHPIni, renderer.PHPIniData{
			MaxExecutionTime: MaxExecutionTime,
			MemoryLimit:      MemoryLimit,
			Timezone:         Timezone,
		}},
		{EtcRoot, "php-fpm.d/atom.conf", renderer.TplFpmPool, renderer.FpmPoolData{
			ErrorLog:    prof.FpmErrorLog,
			AccessLog:   prof.FpmAccessLog,
			User:        prof.FpmUser,
			Group:       prof.FpmGroup,
			ReadOnlyEnv: prof.ReadOnlyEnv,
			Pool:        prof.Pool,
		}},
	}

	p.SideEffects = []SideEffect{
		SymlinkEffect("sf assets symlink", p.AtomPath(SfAssetsTarget), p.AtomPath(SfAssetsLink)),
	}

	return p
}

func (p *Plan) AtomPath(rel string) string {
	return filepath.Join(p.AtomDir, rel)
}

func (p *Plan) EtcPath(rel string) string {
	return filepath.Join(p.EtcDir, rel)
}

// Path resolves a target to its absolute destination.
func (p *Plan) Path(t Target) string {
	if t.Root == EtcRoot {
		return p.EtcPath(t.RelPath)
	}
	return p.AtomPath(t.RelPath)
}

// Rendered is a target with its content, ready to be written.
type Rendered struct {
	Path    string
	Content []byte
}

// Render renders and lints every target without touching the filesystem.
func (p *Plan) Render() ([]Rendered, error) {
	out := make([]Rendered, 0, len(p.Targets))
	for _, t := range p.Targets {
		content, err := renderer.Render(t.Template, t.Data)
		if err != nil {
			return nil, err
		}
		if err := renderer.Lint(t.Template, content); err != nil {
			return nil, err
		}
		out = append(out, Rendered{Path: p.Path(t), Content: []byte(content)})
	}
	return out, nil
}
