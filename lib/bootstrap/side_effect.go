package bootstrap

import (
	"os"

	"github.com/pkg/errors"
)

// SideEffect is a best-effort step. A failure is recorded in the Report and
// never fails the run.
type SideEffect struct {
	Name  string
	Apply func() error
}

// SideEffectResult is the outcome of one SideEffect; Err is nil on success.
type SideEffectResult struct {
	Name string
	Err  error
}

func (r SideEffectResult) OK() bool {
	return r.Err == nil
}

// SymlinkEffect links link to target. It fails when link already exists,
// which is the normal case on every run after the first.
func SymlinkEffect(name, target, link string) SideEffect {
	return SideEffect{
		Name: name,
		Apply: func() error {
			return errors.Wrapf(os.Symlink(target, link), "linking %s", link)
		},
	}
}

func applySideEffects(effects []SideEffect) []SideEffectResult {
	results := make([]SideEffectResult, 0, len(effects))
	for _, e := range effects {
		results = append(results, SideEffectResult{Name: e.Name, Err: safeApply(e)})
	}
	return results
}

func safeApply(e SideEffect) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("%s panicked: %v", e.Name, r)
		}
	}()
	return e.Apply()
}
