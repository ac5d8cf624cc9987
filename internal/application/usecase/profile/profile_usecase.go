package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pybotlabs/pybot-api/internal/domain/profile"
	"github.com/pybotlabs/pybot-api/pkg/apperror"
)

type ProfileUseCase struct {
	profileRepo profile.Repository
}

func NewProfileUseCase(repo profile.Repository) *ProfileUseCase {
	return &ProfileUseCase{profileRepo: repo}
}

type UpdateProfileInput struct {
	SubjectID   uuid.UUID
	DisplayName *string
	Birthdate   *time.Time
	AvatarID    *string
	Style       *profile.LearningStyle
	Pace        *profile.LearningPace
}

type UpdateProfileOutput struct {
	Profile *profile.Profile
}

// ExecuteUpdate merge-writes the onboarding fields (name, birthdate,
// avatar, learning preferences). The row is created on first write;
// learning progress fields are untouched.
func (uc *ProfileUseCase) ExecuteUpdate(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	if input.AvatarID != nil && !profile.ValidAvatarID(*input.AvatarID) {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("unknown avatar id '%s'", *input.AvatarID), nil)
	}
	if input.Style != nil && !profile.ValidStyle(*input.Style) {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("unknown learning style '%s'", *input.Style), nil)
	}
	if input.Pace != nil && !profile.ValidPace(*input.Pace) {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("unknown learning pace '%s'", *input.Pace), nil)
	}

	patch := profile.Patch{
		DisplayName: input.DisplayName,
		Birthdate:   input.Birthdate,
		AvatarID:    input.AvatarID,
		Style:       input.Style,
		Pace:        input.Pace,
	}
	if patch.IsEmpty() {
		return nil, apperror.NewInvalidInput("no profile fields supplied", nil)
	}

	if err := uc.profileRepo.Merge(ctx, input.SubjectID, patch); err != nil {
		return nil, err
	}

	p, err := uc.profileRepo.GetBySubject(ctx, input.SubjectID)
	if err != nil {
		return nil, err
	}
	return &UpdateProfileOutput{Profile: p}, nil
}
