package cli

import (
	"github.com/spf13/cobra"

	"github.com/sevein/atbox/config"
	"github.com/sevein/atbox/lib/bootstrap"
)

func newBootstrapCmd(o *Options, environ func() (map[string]string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Write AtoM, PHP and php-fpm configuration from the environment",
		Long: `Reads ATOM_ELASTICSEARCH_HOST, ATOM_MYSQL_DSN, ATOM_MYSQL_USERNAME and
ATOM_MYSQL_PASSWORD, then writes the AtoM application configs under
ATBOX_ATOM_DIR and the PHP runtime and pool configs under ATBOX_ETC_DIR.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vars, err := environ()
			if err != nil {
				return err
			}
			env, err := config.LoadBootstrapEnv(vars)
			if err != nil {
				return err
			}

			report, err := bootstrap.Run(env, bootstrap.Options{Logger: o.Logger})
			if err != nil {
				return err
			}
			return report.WriteSummary(cmd.OutOrStdout())
		},
	}
}
