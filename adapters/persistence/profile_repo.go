package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/pybotlabs/pybot-api/internal/domain/profile"
	"github.com/pybotlabs/pybot-api/pkg/apperror"
	"github.com/pybotlabs/pybot-api/pkg/logger"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

func (r *postgresProfileRepo) GetBySubject(ctx context.Context, subjectID uuid.UUID) (*profile.Profile, error) {
	query := `
		SELECT subject_id, display_name, birthdate, avatar_id, current_lesson,
		       completed_quizzes, quiz_scores, learning_style, learning_pace, updated_at
		FROM profiles
		WHERE subject_id = $1
	`
	p := &profile.Profile{}
	var completedQuizzesBytes, quizScoresBytes []byte

	err := r.db.QueryRow(ctx, query, subjectID).Scan(
		&p.SubjectID,
		&p.DisplayName,
		&p.Birthdate,
		&p.AvatarID,
		&p.CurrentLesson,
		&completedQuizzesBytes,
		&quizScoresBytes,
		&p.Preferences.Style,
		&p.Preferences.Pace,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("profile", subjectID.String())
		}
		return nil, apperror.NewUpstream("profile store", err)
	}

	if err := json.Unmarshal(completedQuizzesBytes, &p.CompletedQuizzes); err != nil {
		r.logger.Warn("Failed to unmarshal completed_quizzes", zap.String("subject_id", subjectID.String()), zap.Error(err))
		p.CompletedQuizzes = []string{}
	}
	if err := json.Unmarshal(quizScoresBytes, &p.QuizScores); err != nil {
		r.logger.Warn("Failed to unmarshal quiz_scores", zap.String("subject_id", subjectID.String()), zap.Error(err))
		p.QuizScores = map[string]float64{}
	}
	if p.CompletedQuizzes == nil {
		p.CompletedQuizzes = []string{}
	}
	if p.QuizScores == nil {
		p.QuizScores = map[string]float64{}
	}

	return p, nil
}

// Merge sets only the supplied fields and always stamps updated_at. The
// row is created with defaults for everything the patch does not name
// when no profile exists yet.
func (r *postgresProfileRepo) Merge(ctx context.Context, subjectID uuid.UUID, patch profile.Patch) error {
	update, err := r.buildUpdate(subjectID, patch)
	if err != nil {
		return err
	}

	sql, args, err := update.ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build profile update", err)
	}

	ct, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewUpstream("profile store", err)
	}
	if ct.RowsAffected() > 0 {
		return nil
	}

	inserted, err := r.insert(ctx, subjectID, patch)
	if err != nil {
		return err
	}
	if inserted {
		return nil
	}

	// A concurrent first write created the row between our UPDATE and
	// INSERT; re-apply the patch so this write still lands.
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return apperror.NewUpstream("profile store", err)
	}
	return nil
}

func (r *postgresProfileRepo) buildUpdate(subjectID uuid.UUID, patch profile.Patch) (sq.UpdateBuilder, error) {
	b := psql.Update("profiles").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"subject_id": subjectID})

	if patch.DisplayName != nil {
		b = b.Set("display_name", *patch.DisplayName)
	}
	if patch.Birthdate != nil {
		b = b.Set("birthdate", *patch.Birthdate)
	}
	if patch.AvatarID != nil {
		b = b.Set("avatar_id", *patch.AvatarID)
	}
	if patch.CurrentLesson != nil {
		b = b.Set("current_lesson", *patch.CurrentLesson)
	}
	if patch.CompletedQuizzes != nil {
		bytes, err := json.Marshal(patch.CompletedQuizzes)
		if err != nil {
			return b, apperror.NewInternal("failed to marshal completed_quizzes", err)
		}
		b = b.Set("completed_quizzes", bytes)
	}
	if patch.QuizScores != nil {
		bytes, err := json.Marshal(patch.QuizScores)
		if err != nil {
			return b, apperror.NewInternal("failed to marshal quiz_scores", err)
		}
		b = b.Set("quiz_scores", bytes)
	}
	if patch.Style != nil {
		b = b.Set("learning_style", string(*patch.Style))
	}
	if patch.Pace != nil {
		b = b.Set("learning_pace", string(*patch.Pace))
	}

	return b, nil
}

func (r *postgresProfileRepo) insert(ctx context.Context, subjectID uuid.UUID, patch profile.Patch) (bool, error) {
	row := profile.Profile{
		SubjectID:        subjectID,
		CurrentLesson:    1,
		CompletedQuizzes: []string{},
		QuizScores:       map[string]float64{},
		Preferences: profile.Preferences{
			Style: profile.StyleFun,
			Pace:  profile.PaceModerate,
		},
		UpdatedAt: time.Now().UTC(),
	}
	if patch.DisplayName != nil {
		row.DisplayName = *patch.DisplayName
	}
	if patch.Birthdate != nil {
		row.Birthdate = patch.Birthdate
	}
	if patch.AvatarID != nil {
		row.AvatarID = *patch.AvatarID
	}
	if patch.CurrentLesson != nil {
		row.CurrentLesson = *patch.CurrentLesson
	}
	if patch.CompletedQuizzes != nil {
		row.CompletedQuizzes = patch.CompletedQuizzes
	}
	if patch.QuizScores != nil {
		row.QuizScores = patch.QuizScores
	}
	if patch.Style != nil {
		row.Preferences.Style = *patch.Style
	}
	if patch.Pace != nil {
		row.Preferences.Pace = *patch.Pace
	}

	completedQuizzesBytes, err := json.Marshal(row.CompletedQuizzes)
	if err != nil {
		return false, apperror.NewInternal("failed to marshal completed_quizzes", err)
	}
	quizScoresBytes, err := json.Marshal(row.QuizScores)
	if err != nil {
		return false, apperror.NewInternal("failed to marshal quiz_scores", err)
	}

	query := `
		INSERT INTO profiles (subject_id, display_name, birthdate, avatar_id, current_lesson,
		                      completed_quizzes, quiz_scores, learning_style, learning_pace, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (subject_id) DO NOTHING
	`
	ct, err := r.db.Exec(ctx, query,
		row.SubjectID,
		row.DisplayName,
		row.Birthdate,
		row.AvatarID,
		row.CurrentLesson,
		completedQuizzesBytes,
		quizScoresBytes,
		string(row.Preferences.Style),
		string(row.Preferences.Pace),
		row.UpdatedAt,
	)
	if err != nil {
		return false, apperror.NewUpstream("profile store", err)
	}
	return ct.RowsAffected() > 0, nil
}
