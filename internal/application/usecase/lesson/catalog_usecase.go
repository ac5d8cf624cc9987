package lesson

import (
	"context"

	"github.com/pybotlabs/pybot-api/internal/domain/lesson"
)

type CatalogUseCase struct {
	lessonRepo lesson.Repository
}

func NewCatalogUseCase(repo lesson.Repository) *CatalogUseCase {
	return &CatalogUseCase{lessonRepo: repo}
}

type ListLessonsOutput struct {
	Lessons []lesson.Lesson
}

func (uc *CatalogUseCase) ExecuteList(ctx context.Context) (*ListLessonsOutput, error) {
	lessons, err := uc.lessonRepo.ListLessons(ctx)
	if err != nil {
		return nil, err
	}
	return &ListLessonsOutput{Lessons: lessons}, nil
}
