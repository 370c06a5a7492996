package bootstrap

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/sevein/atbox/config"
	"github.com/sevein/atbox/lib/utils"
)

// Report describes a finished run. Secrets are not masked.
type Report struct {
	Profile           string
	ReadOnly          bool
	MysqlDSN          string
	ElasticsearchHost string
	Search            config.HostPort
	Written           []string
	Seeds             []SeedResult
	SideEffects       []SideEffectResult
}

// Seeded lists the destinations that were copied in this run.
func (r *Report) Seeded() []string {
	return lo.FilterMap(r.Seeds, func(s SeedResult, _ int) (string, bool) {
		return filepath.Base(s.Destination), s.Result == utils.Copied
	})
}

// WriteSummary prints the human-readable summary.
func (r *Report) WriteSummary(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintln(&b, "atbox php bootstrap complete")
	fmt.Fprintf(&b, "  profile: %s\n", r.Profile)
	fmt.Fprintf(&b, "  read-only: %t\n", r.ReadOnly)
	fmt.Fprintf(&b, "  mysql dsn: %s\n", r.MysqlDSN)
	fmt.Fprintf(&b, "  elasticsearch: %s\n", r.ElasticsearchHost)
	fmt.Fprintf(&b, "  cache/session backend: local filesystem (%s)\n", CacheDir)
	fmt.Fprintf(&b, "  php profile: %s, memory_limit=%s, max_execution_time=%d\n", Timezone, MemoryLimit, MaxExecutionTime)
	fmt.Fprintf(&b, "  files written: %d\n", len(r.Written))

	seeded := r.Seeded()
	fmt.Fprintf(&b, "  seeded: %s\n", lo.Ternary(len(seeded) == 0, "none", strings.Join(seeded, ", ")))

	for _, s := range r.SideEffects {
		if s.OK() {
			fmt.Fprintf(&b, "  %s: ok\n", s.Name)
		} else {
			fmt.Fprintf(&b, "  %s: skipped (%v)\n", s.Name, s.Err)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
