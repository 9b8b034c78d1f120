package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/attune-api/internal/config"
	"github.com/phrazzld/attune-api/internal/service/auth"
	"github.com/spf13/cobra"
)

// newTokenCmd issues an access token for a user ID. Tokens are normally
// issued by the identity provider that shares the signing secret; this
// command exists for local development.
func newTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token USER_ID",
		Short: "Issue an access token for local development",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid user ID: %w", err)
			}

			cfg, err := config.LoadFile(configFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			token, err := issueToken(cmd, cfg.Auth, userID)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
}

func issueToken(cmd *cobra.Command, cfg config.AuthConfig, userID uuid.UUID) (string, error) {
	jwtService, err := auth.NewJWTService(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	token, err := jwtService.GenerateToken(cmd.Context(), userID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
