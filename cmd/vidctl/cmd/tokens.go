package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/vidshare/internal/repository"
	"github.com/templui/vidshare/internal/service"
)

func TokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Password reset token maintenance",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Clear expired password reset tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			resets := service.NewPasswordResetService(repository.NewAccountRepository(database), nil, nil, cfg.TokenPasswordResetExpiry)
			n, err := resets.PurgeExpired(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("==> Cleared %d expired reset token(s)\n", n)
			return nil
		},
	})

	return cmd
}
