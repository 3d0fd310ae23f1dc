package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"resep/internal/database"
	"resep/internal/repositories"
	"resep/internal/services"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// readPassword reads a password from the terminal without echo.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

func newCreateSuperuserCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create an active staff superuser",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN, cfg.DBDebug)
			if err != nil {
				return err
			}
			defer func() {
				if err := database.Close(db); err != nil {
					logger.Warn("failed to close database", zap.Error(err))
				}
			}()
			auth := services.NewAuthService(
				repositories.NewGORMUserRepository(db),
				repositories.NewGORMTokenRepository(db),
				cfg.JWTSecret, cfg.TokenTTL, nil, logger,
			)

			if password == "" {
				password, err = promptPassword(cmd.OutOrStdout())
				if err != nil {
					return err
				}
			}
			return createSuperuser(cmd.Context(), auth, email, password, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address of the superuser")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func createSuperuser(ctx context.Context, auth *services.AuthService, email, password string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	user, err := auth.CreateSuperuser(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Superuser %s created (id %s)\n", user.Email, user.ID)
	return nil
}

func promptPassword(out io.Writer) (string, error) {
	fmt.Fprint(out, "Password: ")
	first, err := readPassword()
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Fprint(out, "Password (again): ")
	second, err := readPassword()
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	if len(first) == 0 {
		return "", errors.New("password may not be blank")
	}
	return string(first), nil
}
