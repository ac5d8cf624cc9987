package http

import (
	"time"

	chatdomain "github.com/pybotlabs/pybot-api/internal/domain/chat"
	"github.com/pybotlabs/pybot-api/internal/domain/lesson"
	"github.com/pybotlabs/pybot-api/internal/domain/profile"
	"github.com/pybotlabs/pybot-api/internal/domain/rewards"
)

// Chat DTOs

// TurnDTO is the tagged wire shape of one prior conversation turn.
// Anything that is not exactly a user or assistant turn is rejected at
// the boundary instead of being passed through to the provider.
type TurnDTO struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

type ChatRequest struct {
	Message string    `json:"message" binding:"required"`
	Context []TurnDTO `json:"context" binding:"dive"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

func (req *ChatRequest) ToDomainTurns() []chatdomain.Turn {
	turns := make([]chatdomain.Turn, len(req.Context))
	for i, t := range req.Context {
		turns[i] = chatdomain.Turn{
			Role:    chatdomain.Role(t.Role),
			Content: t.Content,
		}
	}
	return turns
}

// Execute DTOs

type ExecuteRequest struct {
	Code string `json:"code" binding:"required"`
}

type ExecuteResponse struct {
	Output string  `json:"output"`
	Error  *string `json:"error"`
}

// Progress / profile DTOs

type LearningPreferencesDTO struct {
	Style string `json:"style"`
	Pace  string `json:"pace"`
}

type ProfileDTO struct {
	SubjectID           string                 `json:"subjectId"`
	DisplayName         string                 `json:"displayName"`
	Birthdate           *time.Time             `json:"birthdate,omitempty"`
	AvatarID            string                 `json:"avatarId"`
	CurrentLesson       int                    `json:"currentLesson"`
	CompletedQuizzes    []string               `json:"completedQuizzes"`
	QuizScores          map[string]float64     `json:"quizScores"`
	LearningPreferences LearningPreferencesDTO `json:"learningPreferences"`
	UpdatedAt           time.Time              `json:"updatedAt"`
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	return ProfileDTO{
		SubjectID:        p.SubjectID.String(),
		DisplayName:      p.DisplayName,
		Birthdate:        p.Birthdate,
		AvatarID:         p.AvatarID,
		CurrentLesson:    p.CurrentLesson,
		CompletedQuizzes: p.CompletedQuizzes,
		QuizScores:       p.QuizScores,
		LearningPreferences: LearningPreferencesDTO{
			Style: string(p.Preferences.Style),
			Pace:  string(p.Preferences.Pace),
		},
		UpdatedAt: p.UpdatedAt,
	}
}

type UpdateProgressRequest struct {
	CurrentLesson    int                `json:"currentLesson" binding:"required,min=1"`
	CompletedQuizzes []string           `json:"completedQuizzes"`
	QuizScores       map[string]float64 `json:"quizScores"`
}

type UpdateProfileRequest struct {
	DisplayName         *string    `json:"displayName"`
	Birthdate           *time.Time `json:"birthdate"`
	AvatarID            *string    `json:"avatarId"`
	LearningPreferences *struct {
		Style string `json:"style" binding:"required,oneof=fun classic"`
		Pace  string `json:"pace" binding:"required,oneof=fast moderate slow"`
	} `json:"learningPreferences"`
}

// Rewards DTOs

type StickerDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ImageURL       string `json:"imageUrl"`
	EvolutionLevel int    `json:"evolutionLevel"`
	Description    string `json:"description"`
}

type StreakDTO struct {
	CurrentStreak        int `json:"currentStreak"`
	HighestStreak        int `json:"highestStreak"`
	TopicsCompletedToday int `json:"topicsCompletedToday"`
}

type RewardsResponse struct {
	Stickers []StickerDTO `json:"stickers"`
	Streak   StreakDTO    `json:"streak"`
}

func ToRewardsResponse(stickers []rewards.Sticker, streak *rewards.Streak) RewardsResponse {
	dtoStickers := make([]StickerDTO, len(stickers))
	for i, s := range stickers {
		dtoStickers[i] = StickerDTO{
			ID:             s.ID,
			Name:           s.Name,
			ImageURL:       s.ImageURL,
			EvolutionLevel: s.EvolutionLevel,
			Description:    s.Description,
		}
	}
	resp := RewardsResponse{Stickers: dtoStickers}
	if streak != nil {
		resp.Streak = StreakDTO{
			CurrentStreak:        streak.CurrentStreak,
			HighestStreak:        streak.HighestStreak,
			TopicsCompletedToday: streak.TopicsCompletedToday,
		}
	}
	return resp
}

// Lesson DTOs

type TopicDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	CodeExample string `json:"codeExample,omitempty"`
}

type QuestionDTO struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

type QuizDTO struct {
	ID        string        `json:"id"`
	Questions []QuestionDTO `json:"questions"`
}

type LessonDTO struct {
	ID      string     `json:"id"`
	Ordinal int        `json:"ordinal"`
	Title   string     `json:"title"`
	Topics  []TopicDTO `json:"topics"`
	Quiz    QuizDTO    `json:"quiz"`
}

func ToLessonDTO(l lesson.Lesson) LessonDTO {
	topics := make([]TopicDTO, len(l.Topics))
	for i, t := range l.Topics {
		topics[i] = TopicDTO{ID: t.ID, Title: t.Title, Content: t.Content, CodeExample: t.CodeExample}
	}
	questions := make([]QuestionDTO, len(l.Quiz.Questions))
	for i, q := range l.Quiz.Questions {
		questions[i] = QuestionDTO{ID: q.ID, Text: q.Text, Options: q.Options, CorrectAnswer: q.CorrectAnswer}
	}
	return LessonDTO{
		ID:      l.ID,
		Ordinal: l.Ordinal,
		Title:   l.Title,
		Topics:  topics,
		Quiz:    QuizDTO{ID: l.Quiz.ID, Questions: questions},
	}
}
