package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pybotlabs/pybot-api/internal/domain/rewards"
	"github.com/pybotlabs/pybot-api/pkg/apperror"
	"github.com/pybotlabs/pybot-api/pkg/logger"
)

// Sticker unlocks and streaks are written by the back-office process;
// this repo only ever reads them.
type postgresRewardsRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresRewardsRepo(db *pgxpool.Pool, logger logger.Logger) rewards.Repository {
	return &postgresRewardsRepo{db: db, logger: logger}
}

func (r *postgresRewardsRepo) ListStickers(ctx context.Context, subjectID uuid.UUID) ([]rewards.Sticker, error) {
	query := `
		SELECT sc.id, sc.name, sc.image_url, sc.evolution_level, sc.description
		FROM user_stickers us
		JOIN sticker_cards sc ON sc.id = us.sticker_id
		WHERE us.subject_id = $1
		ORDER BY sc.evolution_level, sc.name
	`
	rows, err := r.db.Query(ctx, query, subjectID)
	if err != nil {
		return nil, apperror.NewUpstream("rewards store", err)
	}
	defer rows.Close()

	stickers := make([]rewards.Sticker, 0)
	for rows.Next() {
		var s rewards.Sticker
		if err := rows.Scan(&s.ID, &s.Name, &s.ImageURL, &s.EvolutionLevel, &s.Description); err != nil {
			return nil, apperror.NewUpstream("rewards store", err)
		}
		stickers = append(stickers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewUpstream("rewards store", err)
	}
	return stickers, nil
}

func (r *postgresRewardsRepo) GetStreak(ctx context.Context, subjectID uuid.UUID) (*rewards.Streak, error) {
	query := `
		SELECT current_streak, highest_streak, topics_completed_today
		FROM user_streaks
		WHERE subject_id = $1
	`
	s := &rewards.Streak{}
	err := r.db.QueryRow(ctx, query, subjectID).Scan(
		&s.CurrentStreak,
		&s.HighestStreak,
		&s.TopicsCompletedToday,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No streak row yet means zero streak, not an error.
			return &rewards.Streak{}, nil
		}
		return nil, apperror.NewUpstream("rewards store", err)
	}
	return s, nil
}
