// Package bootstrap materializes AtoM's configuration files from the
// environment before php-fpm starts.
//
// A run is linear: resolve the profile, check the AtoM source tree, render
// every target in memory, seed first-run templates, write the targets in
// order, then apply best-effort side effects. Everything before the first
// write can fail the run without leaving partial output behind.
package bootstrap

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/sevein/atbox/config"
	"github.com/sevein/atbox/config/profile"
	"github.com/sevein/atbox/lib/utils"
)

var ErrMissingSourceTree = errors.New("AtoM source tree not found")

type Options struct {
	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Run performs a full bootstrap for env.
func Run(env config.BootstrapEnv, opts Options) (*Report, error) {
	logger := opts.logger().Named("bootstrap").With(zap.String("profile", env.Profile))

	prof, err := profile.Get(env.Profile)
	if err != nil {
		return nil, err
	}

	if !utils.IsDir(env.AtomDir) {
		return nil, errors.Wrapf(ErrMissingSourceTree, "checking %s", env.AtomDir)
	}

	plan := NewPlan(env, prof)

	rendered, err := plan.Render()
	if err != nil {
		return nil, errors.Wrap(err, "rendering configuration")
	}

	report := &Report{
		Profile:           prof.Name,
		ReadOnly:          prof.ReadOnly,
		MysqlDSN:          env.MysqlDSN,
		ElasticsearchHost: env.ElasticsearchHost,
		Search:            plan.Search,
	}

	report.Seeds, err = SeedTemplates(plan.AtomDir, plan.Seeds)
	if err != nil {
		return report, err
	}
	for _, s := range report.Seeds {
		logger.Debug("Seed checked", zap.String("destination", s.Destination), zap.String("result", string(s.Result)))
	}

	for _, r := range rendered {
		if err := utils.WriteFile(r.Path, r.Content); err != nil {
			return report, err
		}
		report.Written = append(report.Written, r.Path)
		logger.Debug("Wrote config file", zap.String("path", r.Path), zap.Int("bytes", len(r.Content)))
	}

	report.SideEffects = applySideEffects(plan.SideEffects)
	for _, r := range report.SideEffects {
		if !r.OK() {
			logger.Debug("Best-effort step skipped", zap.String("step", r.Name), zap.Error(r.Err))
		}
	}

	return report, nil
}
