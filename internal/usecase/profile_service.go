package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openfairway/one-and-done/internal/domain/user"
)

// ProfileService manages user profile fields. Credentials live with the
// account service, not here.
type ProfileService struct {
	userRepo user.Repository
	now      func() time.Time
}

func NewProfileService(userRepo user.Repository) *ProfileService {
	return &ProfileService{
		userRepo: userRepo,
		now:      time.Now,
	}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.Get")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return user.User{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	item, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	return item, nil
}

func (s *ProfileService) UpdateDisplayName(ctx context.Context, userID, displayName string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.UpdateDisplayName")
	defer span.End()

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return user.User{}, fmt.Errorf("%w: display_name is required", ErrInvalidInput)
	}

	return s.merge(ctx, userID, func(item *user.User) {
		item.DisplayName = displayName
	})
}

func (s *ProfileService) UpdateAvatar(ctx context.Context, userID, avatar string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.UpdateAvatar")
	defer span.End()

	return s.merge(ctx, userID, func(item *user.User) {
		item.Avatar = strings.TrimSpace(avatar)
	})
}

func (s *ProfileService) merge(ctx context.Context, userID string, apply func(*user.User)) (user.User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return user.User{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	existing, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}

	apply(&existing)
	existing.UpdatedAt = s.now().UTC()

	if err := s.userRepo.Upsert(ctx, existing); err != nil {
		return user.User{}, fmt.Errorf("upsert user: %w", err)
	}
	return existing, nil
}
