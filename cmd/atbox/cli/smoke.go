package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sevein/atbox/config"
	"github.com/sevein/atbox/lib/smoke"
)

func newSmokeCmd(o *Options, environ func() (map[string]string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "smoke",
		Short: "Load ATBOX_URL in a headless browser and save a screenshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vars, err := environ()
			if err != nil {
				return err
			}
			env, err := config.LoadSmokeEnv(vars)
			if err != nil {
				return err
			}
			opts := smoke.OptionsFromEnv(env)
			opts.Logger = o.Logger

			browser, err := o.NewBrowser(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "starting browser")
			}
			defer func() {
				if err := browser.Close(); err != nil {
					o.Logger.Debug("Closing browser", zap.Error(err))
				}
			}()

			if err := smoke.Run(cmd.Context(), browser, opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved screenshot: %s\n", opts.ScreenshotPath)
			return nil
		},
	}
}
