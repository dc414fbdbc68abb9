package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/hospital-inventory/internal/infrastructure/postgres"
)

func newSeedCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Carga roles, permisos, catálogos, tipos de movimiento y usuarios iniciales",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()
			return postgres.Seed(ctx, pool, password, log)
		},
	}
	cmd.Flags().StringVar(&password, "password", postgres.DefaultSeedPassword, "contraseña de los usuarios semilla")
	return cmd
}
