package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wateringdiary/webapp/internal/models"
)

func openTestDatabase(t *testing.T) *Repositories {
	t.Helper()

	database, err := OpenSQLite(filepath.Join(t.TempDir(), "sessions.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if err := Close(database); err != nil {
			t.Errorf("close sqlite: %v", err)
		}
	})
	return NewRepositories(database)
}

func createSession(t *testing.T, repo *SessionRepository, login string, created time.Time, ttl time.Duration) models.Session {
	t.Helper()

	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    7,
		Login:     login,
		UserAgent: "test-agent",
		CreatedAt: created,
		ExpiresAt: created.Add(ttl),
	}
	if err := repo.Create(context.Background(), &session); err != nil {
		t.Fatalf("create session: %v", err)
	}
	return session
}

func TestSessionRepositoryFindActive(t *testing.T) {
	repo := openTestDatabase(t).Sessions
	ctx := context.Background()
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	session := createSession(t, repo, "anna", now, time.Hour)

	found, err := repo.FindActive(ctx, session.ID, now.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("expected active session, got %v", err)
	}
	if found.UserID != 7 || found.Login != "anna" || found.UserAgent != "test-agent" {
		t.Fatalf("unexpected session: %#v", found)
	}

	if _, err := repo.FindActive(ctx, session.ID, now.Add(2*time.Hour)); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected expired session to be rejected, got %v", err)
	}
	if _, err := repo.FindActive(ctx, uuid.NewString(), now); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected unknown session to be rejected, got %v", err)
	}
}

func TestSessionRepositoryRevoke(t *testing.T) {
	repo := openTestDatabase(t).Sessions
	ctx := context.Background()
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	first := createSession(t, repo, "anna", now, time.Hour)
	second := createSession(t, repo, "anna", now, time.Hour)
	other := createSession(t, repo, "boris", now, time.Hour)

	if err := repo.Revoke(ctx, first.ID, now); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, err := repo.FindActive(ctx, first.ID, now); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected revoked session to be rejected, got %v", err)
	}

	revoked, err := repo.RevokeByLogin(ctx, "anna", now)
	if err != nil {
		t.Fatalf("revoke by login: %v", err)
	}
	if revoked != 1 {
		t.Fatalf("expected one remaining anna session to be revoked, got %d", revoked)
	}
	if _, err := repo.FindActive(ctx, second.ID, now); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected second session to be revoked, got %v", err)
	}
	if _, err := repo.FindActive(ctx, other.ID, now); err != nil {
		t.Fatalf("expected other user's session to stay active, got %v", err)
	}
}

func TestSessionRepositoryPruneExpired(t *testing.T) {
	repo := openTestDatabase(t).Sessions
	ctx := context.Background()
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	createSession(t, repo, "anna", now.Add(-3*time.Hour), time.Hour)
	revoked := createSession(t, repo, "anna", now, time.Hour)
	active := createSession(t, repo, "anna", now, time.Hour)
	if err := repo.Revoke(ctx, revoked.ID, now); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	pruned, err := repo.PruneExpired(ctx, now)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if pruned != 2 {
		t.Fatalf("expected 2 pruned sessions, got %d", pruned)
	}

	count, err := repo.CountActive(ctx, now)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 active session, got %d", count)
	}
	if _, err := repo.FindActive(ctx, active.ID, now); err != nil {
		t.Fatalf("expected active session to survive prune, got %v", err)
	}
}
