package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/config"
	"github.com/sangkips/restopos-api/pkg/utils"
	"github.com/urfave/cli/v2"
)

// postoken mints cashier access tokens for local development and smoke tests.
func main() {
	app := &cli.App{
		Name:  "postoken",
		Usage: "mint a cashier access token for the POS API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "cashier-id", Usage: "cashier uuid (random when empty)"},
			&cli.StringFlag{Name: "name", Value: "Dev Cashier", Usage: "cashier display name"},
			&cli.StringFlag{Name: "branch-id", Required: true, Usage: "branch uuid the token is scoped to"},
			&cli.StringSliceFlag{Name: "role", Value: cli.NewStringSlice("cashier"), Usage: "role to grant (repeatable)"},
			&cli.DurationFlag{Name: "ttl", Usage: "token lifetime (defaults to JWT_EXPIRY_HOURS)"},
		},
		Action: mint,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func mint(c *cli.Context) error {
	cfg := config.Load()

	branchID, err := utils.ParseUUID(c.String("branch-id"))
	if err != nil {
		return fmt.Errorf("branch-id: %w", err)
	}

	cashierID := uuid.New()
	if raw := strings.TrimSpace(c.String("cashier-id")); raw != "" {
		if cashierID, err = utils.ParseUUID(raw); err != nil {
			return fmt.Errorf("cashier-id: %w", err)
		}
	}

	ttl := cfg.JWT.ExpiryHours
	if d := c.Duration("ttl"); d > 0 {
		ttl = d
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	token, err := utils.NewJWTManager(cfg.JWT.Secret, ttl).
		GenerateAccessToken(cashierID, c.String("name"), branchID, c.StringSlice("role"))
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
