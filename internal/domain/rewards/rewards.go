package rewards

import (
	"context"

	"github.com/google/uuid"
)

// Sticker is a collectible unlocked by the external back-office
// process. This service only displays stickers, it never awards them.
type Sticker struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ImageURL       string `json:"image_url"`
	EvolutionLevel int    `json:"evolution_level"`
	Description    string `json:"description"`
}

// Streak is the day-streak aggregate computed by the back office.
type Streak struct {
	CurrentStreak        int `json:"current_streak"`
	HighestStreak        int `json:"highest_streak"`
	TopicsCompletedToday int `json:"topics_completed_today"`
}

type Repository interface {
	// ListStickers returns an empty slice for students with nothing
	// unlocked yet.
	ListStickers(ctx context.Context, subjectID uuid.UUID) ([]Sticker, error)
	// GetStreak returns a zero-valued streak when no row exists.
	GetStreak(ctx context.Context, subjectID uuid.UUID) (*Streak, error)
}
