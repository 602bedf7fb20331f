package cmd

import (
	"parceltrack/internal/pkg/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewRootCommand builds the parceltrack command tree.
func NewRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "parceltrack",
		Short:         "Delivery lifecycle service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load if present")

	setup := func() (Config, *zap.Logger, error) {
		cfg, err := LoadConfig(envFile)
		if err != nil {
			return Config{}, nil, err
		}
		logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return Config{}, nil, err
		}
		return cfg, logger, nil
	}

	root.AddCommand(newServeCommand(setup), newMigrateCommand(setup))
	return root
}

type setupFunc func() (Config, *zap.Logger, error)
