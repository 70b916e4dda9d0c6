package db

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/datainventdev-eng/hr-management/internal/domain/actor"
	"github.com/datainventdev-eng/hr-management/internal/platform/config"
	"github.com/datainventdev-eng/hr-management/internal/platform/ids"
)

// Seed creates the bootstrap hr_admin user when configured and absent.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config, gen ids.Generator) error {
	email := strings.TrimSpace(strings.ToLower(cfg.SeedAdminEmail))
	if email == "" || cfg.SeedAdminPassword == "" {
		slog.Info("seed skipped, admin credentials not configured")
		return nil
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE email = $1", email).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO users (id, email, password_hash, role)
    VALUES ($1, $2, $3, $4)
  `, gen.New(), email, string(hash), actor.RoleHRAdmin)
	if err != nil {
		return err
	}
	slog.Info("seeded bootstrap admin user", "email", email)
	return nil
}
