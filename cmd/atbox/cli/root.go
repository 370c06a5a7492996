package cli

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sevein/atbox/config"
	"github.com/sevein/atbox/lib/smoke"
)

// Version is set by main.
var Version = "dev"

// Options are the process-level dependencies of the commands.
type Options struct {
	// Environ layers the real environment over values read from --env-file.
	Environ    func(fallback map[string]string) map[string]string
	NewBrowser func(ctx context.Context) (smoke.Browser, error)
	// NewLogger is called with ATBOX_LOG_LEVEL before a command runs. When
	// nil, Logger is used as given.
	NewLogger func(level zapcore.Level) (*zap.Logger, error)
	Logger    *zap.Logger
}

func DefaultOptions() Options {
	return Options{
		Environ: config.ProcessEnviron,
		NewBrowser: func(ctx context.Context) (smoke.Browser, error) {
			return smoke.NewChromeBrowser(ctx)
		},
		NewLogger: NewLogger,
		Logger:    zap.L(),
	}
}

func NewRootCmd(opts Options) *cobra.Command {
	o := &opts
	var envFile string

	environ := func() (map[string]string, error) {
		var fallback map[string]string
		if envFile != "" {
			var err error
			if fallback, err = godotenv.Read(envFile); err != nil {
				return nil, err
			}
		}
		return o.Environ(fallback), nil
	}

	rootCmd := &cobra.Command{
		Use:           "atbox",
		Short:         "Container entrypoint helpers for AtoM",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if o.NewLogger == nil {
				return nil
			}
			vars, err := environ()
			if err != nil {
				return err
			}
			logEnv, err := config.LoadLoggingEnv(vars)
			if err != nil {
				return err
			}
			logger, err := o.NewLogger(logEnv.Level)
			if err != nil {
				return err
			}
			o.Logger = logger
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "optional dotenv file; real environment variables take precedence")

	rootCmd.AddCommand(newBootstrapCmd(o, environ), newSmokeCmd(o, environ))
	return rootCmd
}
