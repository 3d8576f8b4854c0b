package services

import (
	"context"
	"errors"
	"time"

	"github.com/vk573reddy/sentari-transcript-empathy/internal/cache"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/models"
	pgrepo "github.com/vk573reddy/sentari-transcript-empathy/internal/repositories/postgres"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/utils"
)

const profileCacheTTL = 5 * time.Minute

func profileCacheKey(userID string) string { return "profile:" + userID }

type ProfileService interface {
	GetMe(ctx context.Context, userID string) (*models.UserProfile, error)
	Reset(ctx context.Context, userID string) error
}

type profileService struct {
	profiles pgrepo.ProfileRepository
	store    pgrepo.Store
	cache    cache.Cache // optional
}

func NewProfileService(profiles pgrepo.ProfileRepository, store pgrepo.Store, c cache.Cache) ProfileService {
	return &profileService{profiles: profiles, store: store, cache: c}
}

func (s *profileService) GetMe(ctx context.Context, userID string) (*models.UserProfile, error) {
	const op = "ProfileService.GetMe"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	if s.cache != nil {
		var cached models.UserProfile
		if hit, err := s.cache.GetJSON(ctx, profileCacheKey(userID), &cached); err == nil && hit {
			return &cached, nil
		}
	}

	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "profile not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, profileCacheKey(userID), p, profileCacheTTL)
	}
	return p, nil
}

// Reset clears the profile and entry log together; the user's next entry
// is a first entry again.
func (s *profileService) Reset(ctx context.Context, userID string) error {
	const op = "ProfileService.Reset"

	if userID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	if err := s.store.ResetUser(ctx, userID); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to reset user", err)
	}

	if s.cache != nil {
		_ = s.cache.Del(ctx, profileCacheKey(userID))
	}
	return nil
}
