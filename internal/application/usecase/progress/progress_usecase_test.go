package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pybotlabs/pybot-api/adapters/event"
	"github.com/pybotlabs/pybot-api/internal/domain/profile"
	"github.com/pybotlabs/pybot-api/pkg/apperror"
	"github.com/pybotlabs/pybot-api/pkg/logger"
)

type memRepo struct {
	profiles map[uuid.UUID]*profile.Profile
	patches  []profile.Patch
}

func newMemRepo() *memRepo {
	return &memRepo{profiles: make(map[uuid.UUID]*profile.Profile)}
}

func (r *memRepo) GetBySubject(ctx context.Context, subjectID uuid.UUID) (*profile.Profile, error) {
	p, ok := r.profiles[subjectID]
	if !ok {
		return nil, apperror.NewNotFound("profile", subjectID.String())
	}
	return p, nil
}

func (r *memRepo) Merge(ctx context.Context, subjectID uuid.UUID, patch profile.Patch) error {
	r.patches = append(r.patches, patch)
	p, ok := r.profiles[subjectID]
	if !ok {
		p = &profile.Profile{
			SubjectID:        subjectID,
			CurrentLesson:    1,
			CompletedQuizzes: []string{},
			QuizScores:       map[string]float64{},
		}
		r.profiles[subjectID] = p
	}
	if patch.CurrentLesson != nil {
		p.CurrentLesson = *patch.CurrentLesson
	}
	if patch.CompletedQuizzes != nil {
		p.CompletedQuizzes = patch.CompletedQuizzes
	}
	if patch.QuizScores != nil {
		p.QuizScores = patch.QuizScores
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}

type recordingPublisher struct {
	events []event.ProgressEvent
	err    error
}

func (p *recordingPublisher) PublishProgress(ctx context.Context, ev event.ProgressEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func TestExecuteUpdate_FirstWriteCreatesProfile(t *testing.T) {
	repo := newMemRepo()
	uc := NewProgressUseCase(repo, nil, logger.NewNop())
	subjectID := uuid.New()

	err := uc.ExecuteUpdate(context.Background(), UpdateProgressInput{
		SubjectID:        subjectID,
		CurrentLesson:    2,
		CompletedQuizzes: []string{"q1"},
		QuizScores:       map[string]float64{"q1": 90},
	})
	require.NoError(t, err)

	p := repo.profiles[subjectID]
	require.NotNil(t, p)
	assert.Equal(t, 2, p.CurrentLesson)
	assert.Equal(t, []string{"q1"}, p.CompletedQuizzes)
	assert.Equal(t, map[string]float64{"q1": 90}, p.QuizScores)
}

func TestExecuteUpdate_LessonCannotDecrease(t *testing.T) {
	repo := newMemRepo()
	subjectID := uuid.New()
	repo.profiles[subjectID] = &profile.Profile{SubjectID: subjectID, CurrentLesson: 5}

	uc := NewProgressUseCase(repo, nil, logger.NewNop())
	err := uc.ExecuteUpdate(context.Background(), UpdateProgressInput{SubjectID: subjectID, CurrentLesson: 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	assert.Empty(t, repo.patches, "no write should reach the store")
}

func TestExecuteUpdate_LessonBelowOne_Rejected(t *testing.T) {
	uc := NewProgressUseCase(newMemRepo(), nil, logger.NewNop())
	err := uc.ExecuteUpdate(context.Background(), UpdateProgressInput{SubjectID: uuid.New(), CurrentLesson: 0})
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
}

func TestExecuteUpdate_CompletedQuizzesOnlyGrow(t *testing.T) {
	repo := newMemRepo()
	subjectID := uuid.New()
	repo.profiles[subjectID] = &profile.Profile{
		SubjectID:        subjectID,
		CurrentLesson:    2,
		CompletedQuizzes: []string{"q1", "q2"},
		QuizScores:       map[string]float64{"q1": 70},
	}

	uc := NewProgressUseCase(repo, nil, logger.NewNop())
	err := uc.ExecuteUpdate(context.Background(), UpdateProgressInput{
		SubjectID:        subjectID,
		CurrentLesson:    2,
		CompletedQuizzes: []string{"q3"},
	})
	require.NoError(t, err)

	p := repo.profiles[subjectID]
	assert.ElementsMatch(t, []string{"q1", "q2", "q3"}, p.CompletedQuizzes)
	assert.Equal(t, map[string]float64{"q1": 70}, p.QuizScores, "stored scores survive")
}

func TestExecuteUpdate_ScoreLastWriteWinsPerQuiz(t *testing.T) {
	repo := newMemRepo()
	subjectID := uuid.New()
	repo.profiles[subjectID] = &profile.Profile{
		SubjectID:        subjectID,
		CurrentLesson:    2,
		CompletedQuizzes: []string{"q1", "q2"},
		QuizScores:       map[string]float64{"q1": 60, "q2": 80},
	}

	uc := NewProgressUseCase(repo, nil, logger.NewNop())
	err := uc.ExecuteUpdate(context.Background(), UpdateProgressInput{
		SubjectID:     subjectID,
		CurrentLesson: 2,
		QuizScores:    map[string]float64{"q1": 95},
	})
	require.NoError(t, err)

	p := repo.profiles[subjectID]
	assert.Equal(t, map[string]float64{"q1": 95, "q2": 80}, p.QuizScores)
}

func TestExecuteUpdate_ScoreRequiresCompletedQuiz(t *testing.T) {
	repo := newMemRepo()
	uc := NewProgressUseCase(repo, nil, logger.NewNop())

	err := uc.ExecuteUpdate(context.Background(), UpdateProgressInput{
		SubjectID:     uuid.New(),
		CurrentLesson: 1,
		QuizScores:    map[string]float64{"q9": 100},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
}

func TestExecuteUpdate_ScoreForQuizCompletedInSameWrite(t *testing.T) {
	repo := newMemRepo()
	uc := NewProgressUseCase(repo, nil, logger.NewNop())

	err := uc.ExecuteUpdate(context.Background(), UpdateProgressInput{
		SubjectID:        uuid.New(),
		CurrentLesson:    1,
		CompletedQuizzes: []string{"q1"},
		QuizScores:       map[string]float64{"q1": 88},
	})
	assert.NoError(t, err)
}

func TestExecuteUpdate_PublishFailureDoesNotFailRequest(t *testing.T) {
	repo := newMemRepo()
	pub := &recordingPublisher{err: errors.New("broker down")}
	uc := NewProgressUseCase(repo, pub, logger.NewNop())
	subjectID := uuid.New()

	err := uc.ExecuteUpdate(context.Background(), UpdateProgressInput{SubjectID: subjectID, CurrentLesson: 2})
	assert.NoError(t, err)
	assert.NotNil(t, repo.profiles[subjectID])
}

func TestExecuteGet_PropagatesNotFound(t *testing.T) {
	uc := NewProgressUseCase(newMemRepo(), nil, logger.NewNop())
	_, err := uc.ExecuteGet(context.Background(), GetProgressInput{SubjectID: uuid.New()})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
