package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stockledger-api/pkg/jwt"
)

func newTokenCmd() *cobra.Command {
	var (
		userID  string
		role    string
		minutes int
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Genera un JWT firmado con JWT_SECRET (desarrollo)",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if minutes <= 0 {
				minutes = cfg.JWT.Expiration
			}
			tok, err := jwt.Generate(cfg.JWT.Secret, userID, role, cfg.JWT.Issuer, minutes)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "1", "id del usuario")
	cmd.Flags().StringVar(&role, "role", "admin", "rol del usuario")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "minutos de validez (0 = JWT_EXPIRATION_MINUTES)")
	return cmd
}
