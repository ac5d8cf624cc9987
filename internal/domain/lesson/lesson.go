package lesson

import "context"

type Topic struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	CodeExample string `json:"code_example,omitempty"`
}

type Question struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

type Quiz struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
}

// Lesson is one unit of the Python course. Ordinal is the 1-based
// position students advance through.
type Lesson struct {
	ID      string  `json:"id"`
	Ordinal int     `json:"ordinal"`
	Title   string  `json:"title"`
	Topics  []Topic `json:"topics"`
	Quiz    Quiz    `json:"quiz"`
}

type Repository interface {
	ListLessons(ctx context.Context) ([]Lesson, error)
}
