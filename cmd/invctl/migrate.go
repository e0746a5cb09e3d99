package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stockledger-api/internal/infrastructure/postgres"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones de esquema embebidas",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Aplica todas las migraciones pendientes",
		RunE: func(c *cobra.Command, _ []string) error {
			dsn, err := databaseDSN()
			if err != nil {
				return err
			}
			if err := postgres.MigrateUp(dsn); err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), "migraciones aplicadas")
			return nil
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Revierte migraciones (por defecto una)",
		RunE: func(c *cobra.Command, _ []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps debe ser al menos 1")
			}
			dsn, err := databaseDSN()
			if err != nil {
				return err
			}
			if err := postgres.MigrateDown(dsn, steps); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "%d migración(es) revertida(s)\n", steps)
			return nil
		},
	}
	down.Flags().IntVarP(&steps, "steps", "n", 1, "número de migraciones a revertir")

	version := &cobra.Command{
		Use:   "version",
		Short: "Muestra la versión actual del esquema",
		RunE: func(c *cobra.Command, _ []string) error {
			dsn, err := databaseDSN()
			if err != nil {
				return err
			}
			v, dirty, err := postgres.MigrationVersion(dsn)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "versión %d (dirty=%t)\n", v, dirty)
			return nil
		},
	}

	cmd.AddCommand(up, down, version)
	return cmd
}

func databaseDSN() (string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	if !cfg.DB.Enabled() {
		return "", fmt.Errorf("DATABASE_URL o DB_HOST requerido")
	}
	return cfg.DB.ConnectionString(), nil
}
