package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap/zapcore"
)

// ErrMissingConfiguration matches every MissingEnvError.
var ErrMissingConfiguration = errors.New("missing required configuration")

// MissingEnvError names the first required environment variable that was
// unset or empty.
type MissingEnvError struct {
	Name string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("Environment variable %s is required", e.Name)
}

func (e *MissingEnvError) Is(target error) bool {
	return target == ErrMissingConfiguration
}

// BootstrapEnv is everything the bootstrap reads from the environment.
// The first four fields are required and are checked in declaration order.
type BootstrapEnv struct {
	ElasticsearchHost string `env:"ATOM_ELASTICSEARCH_HOST,required,notEmpty"`
	MysqlDSN          string `env:"ATOM_MYSQL_DSN,required,notEmpty"`
	MysqlUsername     string `env:"ATOM_MYSQL_USERNAME,required,notEmpty"`
	MysqlPassword     string `env:"ATOM_MYSQL_PASSWORD,required,notEmpty"`

	// AtomDir is the AtoM source tree the application configs are written into.
	AtomDir string `env:"ATBOX_ATOM_DIR" envDefault:"/atom/src"`
	// EtcDir holds php.ini and the php-fpm pool definitions.
	EtcDir  string `env:"ATBOX_ETC_DIR" envDefault:"/usr/local/etc"`
	Profile string `env:"ATBOX_PROFILE" envDefault:"standalone"`
}

// RequiredBootstrapVars lists the required BootstrapEnv variables in the
// order they are validated.
var RequiredBootstrapVars = []string{
	"ATOM_ELASTICSEARCH_HOST",
	"ATOM_MYSQL_DSN",
	"ATOM_MYSQL_USERNAME",
	"ATOM_MYSQL_PASSWORD",
}

type SmokeEnv struct {
	URL            string `env:"ATBOX_URL,required,notEmpty"`
	ScreenshotPath string `env:"PLAYWRIGHT_SCREENSHOT,required,notEmpty"`
	WaitSelector   string `env:"PLAYWRIGHT_WAIT_SELECTOR" envDefault:"#search-box-input"`
	WaitAfterMs    int    `env:"PLAYWRIGHT_WAIT_AFTER_MS" envDefault:"1000"`
	TimeoutMs      int    `env:"PLAYWRIGHT_TIMEOUT_MS" envDefault:"20000"`
}

var RequiredSmokeVars = []string{
	"ATBOX_URL",
	"PLAYWRIGHT_SCREENSHOT",
}

type LoggingEnv struct {
	Level zapcore.Level `env:"ATBOX_LOG_LEVEL" envDefault:"warn"`
}

// Environ turns KEY=VALUE pairs (as returned by os.Environ) into a map.
// Later duplicates win.
func Environ(pairs []string) map[string]string {
	return lo.Associate(pairs, func(kv string) (string, string) {
		k, v, _ := strings.Cut(kv, "=")
		return k, v
	})
}

// ProcessEnviron returns the current process environment, layered on top of
// the optional fallback values (e.g. read from a dotenv file).
func ProcessEnviron(fallback map[string]string) map[string]string {
	return lo.Assign(fallback, Environ(os.Environ()))
}

func LoadBootstrapEnv(environ map[string]string) (BootstrapEnv, error) {
	return parse[BootstrapEnv](environ, RequiredBootstrapVars)
}

func LoadSmokeEnv(environ map[string]string) (SmokeEnv, error) {
	return parse[SmokeEnv](environ, RequiredSmokeVars)
}

func LoadLoggingEnv(environ map[string]string) (LoggingEnv, error) {
	return parse[LoggingEnv](environ, nil)
}

func parse[T any](environ map[string]string, required []string) (T, error) {
	var envObj T

	// Fail fast on the first missing name rather than reporting the
	// aggregate error env collects.
	if name, ok := lo.Find(required, func(name string) bool { return environ[name] == "" }); ok {
		return envObj, &MissingEnvError{Name: name}
	}

	if err := env.ParseWithOptions(&envObj, env.Options{Environment: environ}); err != nil {
		return envObj, errors.Wrap(err, "parsing environment")
	}
	return envObj, nil
}
