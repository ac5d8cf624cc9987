package persistence

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/pybotlabs/pybot-api/internal/domain/lesson"
	"github.com/pybotlabs/pybot-api/pkg/apperror"
	"github.com/pybotlabs/pybot-api/pkg/logger"
)

type postgresLessonRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresLessonRepo(db *pgxpool.Pool, logger logger.Logger) lesson.Repository {
	return &postgresLessonRepo{db: db, logger: logger}
}

func (r *postgresLessonRepo) ListLessons(ctx context.Context) ([]lesson.Lesson, error) {
	query := `
		SELECT id, ordinal, title, topics, quiz
		FROM lessons
		ORDER BY ordinal
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, apperror.NewUpstream("lesson store", err)
	}
	defer rows.Close()

	lessons := make([]lesson.Lesson, 0)
	for rows.Next() {
		var l lesson.Lesson
		var topicsBytes, quizBytes []byte
		if err := rows.Scan(&l.ID, &l.Ordinal, &l.Title, &topicsBytes, &quizBytes); err != nil {
			return nil, apperror.NewUpstream("lesson store", err)
		}
		if err := json.Unmarshal(topicsBytes, &l.Topics); err != nil {
			r.logger.Warn("Failed to unmarshal lesson topics", zap.String("lesson_id", l.ID), zap.Error(err))
			l.Topics = []lesson.Topic{}
		}
		if err := json.Unmarshal(quizBytes, &l.Quiz); err != nil {
			r.logger.Warn("Failed to unmarshal lesson quiz", zap.String("lesson_id", l.ID), zap.Error(err))
		}
		lessons = append(lessons, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewUpstream("lesson store", err)
	}
	return lessons, nil
}
