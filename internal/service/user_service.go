package service

import (
	"context"

	"stride/internal/models"
	"stride/internal/repository"
)

// UserService handles profile reads and the onboarding update.
type UserService struct {
	userRepo repository.UserRepository
}

// UpdateProfileInput carries the partial profile update. Nil pointers mean
// "leave unchanged".
type UpdateProfileInput struct {
	UserID        uint
	Nickname      *string
	AvatarURL     *string
	Gender        *string
	AgeRange      *string
	Interests     *[]string
	DailyStepGoal *int
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile applies the provided fields only and marks the user as
// onboarded, matching the first-run flow where finishing the profile form
// completes onboarding.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	const maxNicknameLen = 60
	const maxInterests = 20

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Nickname != nil {
		if len(*in.Nickname) > maxNicknameLen {
			return nil, models.NewValidationError("Nickname too long (max 60 characters)")
		}
		user.Nickname = *in.Nickname
	}
	if in.AvatarURL != nil {
		user.AvatarURL = *in.AvatarURL
	}
	if in.Gender != nil {
		user.Gender = *in.Gender
	}
	if in.AgeRange != nil {
		user.AgeRange = *in.AgeRange
	}
	if in.Interests != nil {
		if len(*in.Interests) > maxInterests {
			return nil, models.NewValidationError("Too many interests (max 20)")
		}
		user.Interests = *in.Interests
	}
	if in.DailyStepGoal != nil {
		if *in.DailyStepGoal < 0 {
			return nil, models.NewValidationError("Daily step goal must not be negative")
		}
		user.DailyStepGoal = *in.DailyStepGoal
	}

	user.IsOnboarded = true

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
