package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/openfairway/one-and-done/internal/domain/user"
	"github.com/openfairway/one-and-done/internal/infrastructure/repository/memory"
)

func TestProfileService_Get(t *testing.T) {
	t.Parallel()

	repo := memory.NewUserRepository([]user.User{
		{ID: "u1", Email: "alice@example.com", DisplayName: "Alice"},
	})
	svc := NewProfileService(repo)

	got, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.DisplayName != "Alice" {
		t.Fatalf("unexpected profile: %+v", got)
	}

	_, err = svc.Get(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_, err = svc.Get(context.Background(), "  ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestProfileService_UpdateDisplayName(t *testing.T) {
	t.Parallel()

	repo := memory.NewUserRepository([]user.User{
		{ID: "u1", Email: "alice@example.com", DisplayName: "Alice"},
	})
	svc := NewProfileService(repo)
	updatedAt := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return updatedAt }

	got, err := svc.UpdateDisplayName(context.Background(), "u1", "  Ace Alice  ")
	if err != nil {
		t.Fatalf("update display name: %v", err)
	}
	if got.DisplayName != "Ace Alice" {
		t.Fatalf("expected trimmed display name, got %+v", got)
	}
	if !got.UpdatedAt.Equal(updatedAt) {
		t.Fatalf("expected updated_at stamped, got %+v", got)
	}

	stored, exists, err := repo.GetByID(context.Background(), "u1")
	if err != nil || !exists {
		t.Fatalf("get stored user: exists=%v err=%v", exists, err)
	}
	if stored.DisplayName != "Ace Alice" {
		t.Fatalf("expected change persisted, got %+v", stored)
	}

	_, err = svc.UpdateDisplayName(context.Background(), "u1", "   ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}

	_, err = svc.UpdateDisplayName(context.Background(), "ghost", "Someone")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProfileService_UpdateAvatar(t *testing.T) {
	t.Parallel()

	repo := memory.NewUserRepository([]user.User{
		{ID: "u1", Email: "alice@example.com", DisplayName: "Alice", Avatar: "old"},
	})
	svc := NewProfileService(repo)

	got, err := svc.UpdateAvatar(context.Background(), "u1", " data:image/png;base64,AAAA ")
	if err != nil {
		t.Fatalf("update avatar: %v", err)
	}
	if got.Avatar != "data:image/png;base64,AAAA" {
		t.Fatalf("expected trimmed avatar, got %+v", got)
	}

	// Clearing the avatar is allowed.
	got, err = svc.UpdateAvatar(context.Background(), "u1", "")
	if err != nil {
		t.Fatalf("clear avatar: %v", err)
	}
	if got.Avatar != "" {
		t.Fatalf("expected empty avatar, got %+v", got)
	}
}
