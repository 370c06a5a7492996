package bootstrap

import (
	"github.com/pkg/errors"

	"github.com/sevein/atbox/lib/utils"
)

// SeedResult records what happened to one Seed.
type SeedResult struct {
	Seed
	Result utils.CopyResult
}

// SeedTemplates copies each seed's template into place when the canonical
// file is missing. It is a no-op for seeds that already exist or ship no
// template. Paths are relative to atomDir.
func SeedTemplates(atomDir string, seeds []Seed) ([]SeedResult, error) {
	p := Plan{AtomDir: atomDir}
	results := make([]SeedResult, 0, len(seeds))
	for _, s := range seeds {
		res, err := utils.CopyIfAbsent(p.AtomPath(s.Source), p.AtomPath(s.Destination))
		if err != nil {
			return results, errors.Wrapf(err, "seeding %s", s.Destination)
		}
		results = append(results, SeedResult{Seed: s, Result: res})
	}
	return results, nil
}
