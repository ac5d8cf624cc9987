package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type LearningStyle string

const (
	StyleFun     LearningStyle = "fun"
	StyleClassic LearningStyle = "classic"
)

type LearningPace string

const (
	PaceFast     LearningPace = "fast"
	PaceModerate LearningPace = "moderate"
	PaceSlow     LearningPace = "slow"
)

// Preferences condition the tutor's tone and speed per student.
type Preferences struct {
	Style LearningStyle `json:"style"`
	Pace  LearningPace  `json:"pace"`
}

// Profile is the persisted per-student learning state. SubjectID is the
// identity-service key and never changes after the first write.
// CurrentLesson and CompletedQuizzes only ever grow; QuizScores is
// last-write-wins per quiz.
type Profile struct {
	SubjectID        uuid.UUID          `json:"subject_id"`
	DisplayName      string             `json:"display_name"`
	Birthdate        *time.Time         `json:"birthdate,omitempty"`
	AvatarID         string             `json:"avatar_id"`
	CurrentLesson    int                `json:"current_lesson"`
	CompletedQuizzes []string           `json:"completed_quizzes"`
	QuizScores       map[string]float64 `json:"quiz_scores"`
	Preferences      Preferences        `json:"learning_preferences"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

func (p *Profile) HasCompletedQuiz(quizID string) bool {
	for _, q := range p.CompletedQuizzes {
		if q == quizID {
			return true
		}
	}
	return false
}

// Patch is a partial update. Nil pointers and nil collections mean
// "leave the stored value alone"; the store stamps UpdatedAt itself.
type Patch struct {
	DisplayName      *string
	Birthdate        *time.Time
	AvatarID         *string
	CurrentLesson    *int
	CompletedQuizzes []string
	QuizScores       map[string]float64
	Style            *LearningStyle
	Pace             *LearningPace
}

func (p Patch) IsEmpty() bool {
	return p.DisplayName == nil &&
		p.Birthdate == nil &&
		p.AvatarID == nil &&
		p.CurrentLesson == nil &&
		p.CompletedQuizzes == nil &&
		p.QuizScores == nil &&
		p.Style == nil &&
		p.Pace == nil
}

type Repository interface {
	// GetBySubject returns apperror.ErrNotFound when no row exists yet;
	// the record is only created on first write.
	GetBySubject(ctx context.Context, subjectID uuid.UUID) (*Profile, error)
	// Merge applies the supplied fields only and stamps updated_at.
	// The row is created implicitly when absent.
	Merge(ctx context.Context, subjectID uuid.UUID, patch Patch) error
}

// AvatarIDs is the fixed set of avatar assets the client may pick from.
var AvatarIDs = []string{
	"avatar1", "avatar2", "avatar3", "avatar4", "avatar5", "avatar6",
	"bot1", "bot2", "bot3", "bot4",
}

func ValidAvatarID(id string) bool {
	for _, a := range AvatarIDs {
		if a == id {
			return true
		}
	}
	return false
}

func ValidStyle(s LearningStyle) bool {
	return s == StyleFun || s == StyleClassic
}

func ValidPace(p LearningPace) bool {
	return p == PaceFast || p == PaceModerate || p == PaceSlow
}
