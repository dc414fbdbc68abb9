package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/hospital-inventory/internal/infrastructure/postgres"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Aplica las migraciones embebidas (goose)",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{postgres.MigrateUp, postgres.MigrateDown, postgres.MigrateStatus},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			if err := postgres.Migrate(cfg.DB.ConnectionString(), args[0]); err != nil {
				return err
			}
			log.Info().Str("command", args[0]).Msg("migraciones aplicadas")
			return nil
		},
	}
}
