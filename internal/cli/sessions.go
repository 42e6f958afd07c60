package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/wateringdiary/webapp/internal/db"
)

// RunPruneSessionsCommand deletes expired and revoked sessions.
func RunPruneSessionsCommand(ctx context.Context, dbPath string, logger *zap.Logger, out io.Writer) error {
	database, err := db.OpenSQLite(dbPath, logger)
	if err != nil {
		return errors.Wrap(err, "database init failed")
	}
	defer db.Close(database)

	repo := db.NewSessionRepository(database)
	now := time.Now()
	pruned, err := repo.PruneExpired(ctx, now)
	if err != nil {
		return errors.Wrap(err, "prune sessions")
	}
	active, err := repo.CountActive(ctx, now)
	if err != nil {
		return errors.Wrap(err, "count sessions")
	}

	logger.Info("sessions pruned", zap.Int64("pruned", pruned), zap.Int64("active", active))
	fmt.Fprintf(out, "Pruned %d session(s), %d still active\n", pruned, active)
	return nil
}

// RunRevokeSessionsCommand signs a login out of every browser.
func RunRevokeSessionsCommand(ctx context.Context, dbPath string, login string, logger *zap.Logger, out io.Writer) error {
	normalizedLogin := strings.TrimSpace(login)
	if normalizedLogin == "" {
		return errors.New("login is required")
	}

	database, err := db.OpenSQLite(dbPath, logger)
	if err != nil {
		return errors.Wrap(err, "database init failed")
	}
	defer db.Close(database)

	revoked, err := db.NewSessionRepository(database).RevokeByLogin(ctx, normalizedLogin, time.Now())
	if err != nil {
		return errors.Wrapf(err, "revoke sessions of %s", normalizedLogin)
	}

	logger.Info("sessions revoked", zap.String("login", normalizedLogin), zap.Int64("revoked", revoked))
	fmt.Fprintf(out, "Revoked %d session(s) of %s\n", revoked, normalizedLogin)
	return nil
}
