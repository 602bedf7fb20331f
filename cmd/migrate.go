package cmd

import (
	"parceltrack/internal/adapters/out/postgres/migrations"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCommand(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if err = migrations.Up(cmd.Context(), cfg.DSN()); err != nil {
				return err
			}

			version, err := migrations.Version(cmd.Context(), cfg.DSN())
			if err != nil {
				return err
			}
			logger.Info("schema is up to date", zap.Int64("version", version))
			return nil
		},
	}
}
