package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func fullBootstrapEnviron() map[string]string {
	return map[string]string{
		"ATOM_ELASTICSEARCH_HOST": "elasticsearch:9200",
		"ATOM_MYSQL_DSN":          "mysql:host=percona;port=3306;dbname=atom;charset=utf8mb4",
		"ATOM_MYSQL_USERNAME":     "atom",
		"ATOM_MYSQL_PASSWORD":     "s3cr3t",
	}
}

func TestLoadBootstrapEnv_Defaults(t *testing.T) {
	got, err := LoadBootstrapEnv(fullBootstrapEnviron())
	require.NoError(t, err)

	assert.Equal(t, "elasticsearch:9200", got.ElasticsearchHost)
	assert.Equal(t, "mysql:host=percona;port=3306;dbname=atom;charset=utf8mb4", got.MysqlDSN)
	assert.Equal(t, "atom", got.MysqlUsername)
	assert.Equal(t, "s3cr3t", got.MysqlPassword)
	assert.Equal(t, "/atom/src", got.AtomDir)
	assert.Equal(t, "/usr/local/etc", got.EtcDir)
	assert.Equal(t, "standalone", got.Profile)
}

func TestLoadBootstrapEnv_ValuesAreNotTrimmed(t *testing.T) {
	environ := fullBootstrapEnviron()
	environ["ATOM_MYSQL_PASSWORD"] = "  spaced\t"

	got, err := LoadBootstrapEnv(environ)
	require.NoError(t, err)
	assert.Equal(t, "  spaced\t", got.MysqlPassword)
}

func TestLoadBootstrapEnv_Overrides(t *testing.T) {
	environ := fullBootstrapEnviron()
	environ["ATBOX_ATOM_DIR"] = "/srv/atom"
	environ["ATBOX_ETC_DIR"] = "/srv/etc"
	environ["ATBOX_PROFILE"] = "container"

	got, err := LoadBootstrapEnv(environ)
	require.NoError(t, err)
	assert.Equal(t, "/srv/atom", got.AtomDir)
	assert.Equal(t, "/srv/etc", got.EtcDir)
	assert.Equal(t, "container", got.Profile)
}

func TestLoadBootstrapEnv_MissingOrEmpty(t *testing.T) {
	for _, name := range RequiredBootstrapVars {
		for _, mode := range []string{"unset", "empty"} {
			t.Run(name+"/"+mode, func(t *testing.T) {
				environ := fullBootstrapEnviron()
				if mode == "unset" {
					delete(environ, name)
				} else {
					environ[name] = ""
				}

				_, err := LoadBootstrapEnv(environ)
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMissingConfiguration)

				var missing *MissingEnvError
				require.ErrorAs(t, err, &missing)
				assert.Equal(t, name, missing.Name)
				assert.Equal(t, "Environment variable "+name+" is required", err.Error())
			})
		}
	}
}

func TestLoadBootstrapEnv_ReportsFirstMissingOnly(t *testing.T) {
	_, err := LoadBootstrapEnv(map[string]string{})

	var missing *MissingEnvError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "ATOM_ELASTICSEARCH_HOST", missing.Name)
	assert.NotContains(t, err.Error(), "ATOM_MYSQL_DSN")
}

// The validation order and the struct tags must agree.
func TestRequiredBootstrapVarsMatchStructTags(t *testing.T) {
	typ := reflect.TypeOf(BootstrapEnv{})
	var tagged []string
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("env")
		if strings.Contains(tag, ",required") {
			name, _, _ := strings.Cut(tag, ",")
			tagged = append(tagged, name)
		}
	}
	assert.Equal(t, RequiredBootstrapVars, tagged)
}

func TestLoadSmokeEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		got, err := LoadSmokeEnv(map[string]string{
			"ATBOX_URL":             "http://localhost:8080/",
			"PLAYWRIGHT_SCREENSHOT": "/tmp/shots/home.png",
		})
		require.NoError(t, err)
		assert.Equal(t, "#search-box-input", got.WaitSelector)
		assert.Equal(t, 1000, got.WaitAfterMs)
		assert.Equal(t, 20000, got.TimeoutMs)
	})

	t.Run("missing screenshot", func(t *testing.T) {
		_, err := LoadSmokeEnv(map[string]string{"ATBOX_URL": "http://localhost/"})
		var missing *MissingEnvError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "PLAYWRIGHT_SCREENSHOT", missing.Name)
	})

	t.Run("bad number", func(t *testing.T) {
		_, err := LoadSmokeEnv(map[string]string{
			"ATBOX_URL":                "http://localhost/",
			"PLAYWRIGHT_SCREENSHOT":    "/tmp/x.png",
			"PLAYWRIGHT_TIMEOUT_MS":    "soon",
			"PLAYWRIGHT_WAIT_AFTER_MS": "10",
		})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrMissingConfiguration)
	})
}

func TestLoadLoggingEnv(t *testing.T) {
	got, err := LoadLoggingEnv(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, got.Level)

	got, err = LoadLoggingEnv(map[string]string{"ATBOX_LOG_LEVEL": "debug"})
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, got.Level)
}

func TestEnviron(t *testing.T) {
	got := Environ([]string{"A=1", "B=x=y", "EMPTY=", "A=2"})
	assert.Equal(t, map[string]string{"A": "2", "B": "x=y", "EMPTY": ""}, got)
}
