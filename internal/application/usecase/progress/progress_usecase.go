package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pybotlabs/pybot-api/adapters/event"
	"github.com/pybotlabs/pybot-api/internal/domain/profile"
	"github.com/pybotlabs/pybot-api/pkg/apperror"
	"github.com/pybotlabs/pybot-api/pkg/logger"
)

// ProgressPublisher feeds progress changes to the back-office streak
// and sticker computer. Publishing is best effort.
type ProgressPublisher interface {
	PublishProgress(ctx context.Context, ev event.ProgressEvent) error
}

type ProgressUseCase struct {
	profileRepo profile.Repository
	publisher   ProgressPublisher
	logger      logger.Logger
}

// NewProgressUseCase builds the usecase. publisher may be nil when no
// broker is configured.
func NewProgressUseCase(repo profile.Repository, publisher ProgressPublisher, log logger.Logger) *ProgressUseCase {
	return &ProgressUseCase{
		profileRepo: repo,
		publisher:   publisher,
		logger:      log,
	}
}

type GetProgressInput struct {
	SubjectID uuid.UUID
}

type GetProgressOutput struct {
	Profile *profile.Profile
}

func (uc *ProgressUseCase) ExecuteGet(ctx context.Context, input GetProgressInput) (*GetProgressOutput, error) {
	p, err := uc.profileRepo.GetBySubject(ctx, input.SubjectID)
	if err != nil {
		return nil, err
	}
	return &GetProgressOutput{Profile: p}, nil
}

type UpdateProgressInput struct {
	SubjectID        uuid.UUID
	CurrentLesson    int
	CompletedQuizzes []string
	QuizScores       map[string]float64
}

// ExecuteUpdate merge-writes the caller's own learning state. Lessons
// never move backwards, completed quizzes only grow, and a score may
// only be recorded for a quiz that is completed in the same write or
// was completed before. Scores overwrite per quiz, last write wins.
func (uc *ProgressUseCase) ExecuteUpdate(ctx context.Context, input UpdateProgressInput) error {
	if input.CurrentLesson < 1 {
		return apperror.NewInvalidInput(fmt.Sprintf("currentLesson must be >= 1, got %d", input.CurrentLesson), nil)
	}

	existing, err := uc.profileRepo.GetBySubject(ctx, input.SubjectID)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return err
	}

	merged, err := mergeProgress(existing, input)
	if err != nil {
		return err
	}

	patch := profile.Patch{
		CurrentLesson:    &merged.currentLesson,
		CompletedQuizzes: merged.completedQuizzes,
		QuizScores:       merged.quizScores,
	}
	if err := uc.profileRepo.Merge(ctx, input.SubjectID, patch); err != nil {
		return err
	}

	uc.publish(ctx, input.SubjectID, merged)
	return nil
}

type mergedProgress struct {
	currentLesson    int
	completedQuizzes []string
	quizScores       map[string]float64
}

func mergeProgress(existing *profile.Profile, input UpdateProgressInput) (*mergedProgress, error) {
	merged := &mergedProgress{
		currentLesson:    input.CurrentLesson,
		completedQuizzes: make([]string, 0, len(input.CompletedQuizzes)),
		quizScores:       make(map[string]float64, len(input.QuizScores)),
	}

	if existing != nil {
		if input.CurrentLesson < existing.CurrentLesson {
			return nil, apperror.NewInvalidInput(
				fmt.Sprintf("currentLesson cannot decrease from %d to %d", existing.CurrentLesson, input.CurrentLesson), nil)
		}
		merged.completedQuizzes = append(merged.completedQuizzes, existing.CompletedQuizzes...)
		for quizID, score := range existing.QuizScores {
			merged.quizScores[quizID] = score
		}
	}

	seen := make(map[string]bool, len(merged.completedQuizzes))
	for _, quizID := range merged.completedQuizzes {
		seen[quizID] = true
	}
	for _, quizID := range input.CompletedQuizzes {
		if !seen[quizID] {
			merged.completedQuizzes = append(merged.completedQuizzes, quizID)
			seen[quizID] = true
		}
	}

	for quizID, score := range input.QuizScores {
		if !seen[quizID] {
			return nil, apperror.NewInvalidInput(
				fmt.Sprintf("score recorded for quiz '%s' that was never completed", quizID), nil)
		}
		merged.quizScores[quizID] = score
	}

	return merged, nil
}

func (uc *ProgressUseCase) publish(ctx context.Context, subjectID uuid.UUID, merged *mergedProgress) {
	if uc.publisher == nil {
		return
	}

	ev := event.ProgressEvent{
		SubjectID:        subjectID,
		CurrentLesson:    merged.currentLesson,
		CompletedQuizzes: merged.completedQuizzes,
		OccurredAt:       time.Now().UTC(),
	}
	if err := uc.publisher.PublishProgress(ctx, ev); err != nil {
		// The write already landed; a lost event only delays rewards.
		uc.logger.Warn("Failed to publish progress event",
			zap.String("subject_id", subjectID.String()), zap.Error(err))
	}
}
