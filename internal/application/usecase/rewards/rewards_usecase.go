package rewards

import (
	"context"

	"github.com/google/uuid"

	"github.com/pybotlabs/pybot-api/internal/domain/rewards"
)

type RewardsUseCase struct {
	rewardsRepo rewards.Repository
}

func NewRewardsUseCase(repo rewards.Repository) *RewardsUseCase {
	return &RewardsUseCase{rewardsRepo: repo}
}

type GetRewardsInput struct {
	SubjectID uuid.UUID
}

type GetRewardsOutput struct {
	Stickers []rewards.Sticker
	Streak   *rewards.Streak
}

func (uc *RewardsUseCase) ExecuteGet(ctx context.Context, input GetRewardsInput) (*GetRewardsOutput, error) {
	stickers, err := uc.rewardsRepo.ListStickers(ctx, input.SubjectID)
	if err != nil {
		return nil, err
	}
	streak, err := uc.rewardsRepo.GetStreak(ctx, input.SubjectID)
	if err != nil {
		return nil, err
	}
	if stickers == nil {
		stickers = []rewards.Sticker{}
	}
	return &GetRewardsOutput{Stickers: stickers, Streak: streak}, nil
}
