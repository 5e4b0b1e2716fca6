package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"freight/internal/entities"
	"freight/internal/pkg/middlewares/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	var (
		secret   string
		issuer   string
		driverID string
		role     string
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a session token for a driver or the system role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if secret == "" {
				secret = os.Getenv("AUTH_JWT_SECRET")
			}
			if issuer == "" {
				issuer = os.Getenv("AUTH_JWT_ISSUER")
			}
			if secret == "" {
				return errors.New("secret is empty: set AUTH_JWT_SECRET or --secret")
			}
			if driverID == "" {
				return errors.New("--driver is required")
			}

			now := time.Now().UTC()
			token, err := auth.NewVerifier(secret, issuer).Sign(
				entities.Identity{DriverID: driverID, Role: entities.Role(role)},
				jwt.RegisteredClaims{
					ID:        uuid.NewString(),
					IssuedAt:  jwt.NewNumericDate(now),
					ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
				},
			)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "HMAC secret, AUTH_JWT_SECRET when empty")
	cmd.Flags().StringVar(&issuer, "issuer", "", "token issuer, AUTH_JWT_ISSUER when empty")
	cmd.Flags().StringVar(&driverID, "driver", "", "driver id (token subject)")
	cmd.Flags().StringVar(&role, "role", string(entities.RoleDriver), "driver or system")
	cmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "token lifetime")
	return cmd
}
