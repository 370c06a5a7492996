// Package profile holds the small table of values that differ between
// deployments of the bootstrap (log destinations, how read-only mode is
// spelled for php-fpm workers, process owner, pool sizing).
//
// The table is embedded as profiles.toml and validated on load.
package profile

import (
	_ "embed"
	"sort"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Default is used when ATBOX_PROFILE is not set.
const Default = "standalone"

//go:embed profiles.toml
var profilesTOML string

var ErrUnknownProfile = errors.New("unknown profile")

// Pool is the php-fpm process pool definition.
type Pool struct {
	Listen          string `toml:"listen" validate:"required,hostname_port"`
	PM              string `toml:"pm" validate:"required,oneof=static dynamic ondemand"`
	MaxChildren     int    `toml:"max_children" validate:"min=1"`
	StartServers    int    `toml:"start_servers" validate:"min=1,ltefield=MaxChildren"`
	MinSpareServers int    `toml:"min_spare_servers" validate:"min=1,ltefield=MaxSpareServers"`
	MaxSpareServers int    `toml:"max_spare_servers" validate:"min=1,ltefield=MaxChildren"`
}

type Profile struct {
	Name string `toml:"-"`

	// ReadOnly goes into app.yml; ReadOnlyEnv is how the same flag is handed
	// to php-fpm workers through env[ATOM_READ_ONLY].
	ReadOnly    bool   `toml:"read_only"`
	ReadOnlyEnv string `toml:"read_only_env" validate:"required"`

	FpmErrorLog  string `toml:"fpm_error_log" validate:"required,startswith=/"`
	FpmAccessLog string `toml:"fpm_access_log" validate:"required,startswith=/"`
	FpmUser      string `toml:"fpm_user" validate:"required_with=FpmGroup"`
	FpmGroup     string `toml:"fpm_group" validate:"required_with=FpmUser"`

	Pool Pool `toml:"pool"`
}

var (
	loadOnce sync.Once
	table    map[string]Profile
	loadErr  error
	validate = validator.New()
)

func load() (map[string]Profile, error) {
	loadOnce.Do(func() {
		var decoded map[string]Profile
		if _, err := toml.Decode(profilesTOML, &decoded); err != nil {
			loadErr = errors.Wrap(err, "decoding embedded profiles")
			return
		}
		for name, p := range decoded {
			p.Name = name
			if err := validate.Struct(p); err != nil {
				loadErr = errors.Wrapf(err, "profile %q", name)
				return
			}
			decoded[name] = p
		}
		table = decoded
	})
	return table, loadErr
}

// Get returns the named profile.
func Get(name string) (Profile, error) {
	profiles, err := load()
	if err != nil {
		return Profile{}, err
	}
	p, ok := profiles[name]
	if !ok {
		return Profile{}, errors.Wrapf(ErrUnknownProfile, "%q (known: %v)", name, Names())
	}
	return p, nil
}

// Names lists the known profiles, sorted.
func Names() []string {
	profiles, err := load()
	if err != nil {
		return nil
	}
	names := lo.Keys(profiles)
	sort.Strings(names)
	return names
}

// Validate checks a profile built outside the embedded table.
func Validate(p Profile) error {
	return validate.Struct(p)
}
