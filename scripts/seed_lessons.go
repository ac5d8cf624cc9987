package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/pybotlabs/pybot-api/internal/domain/lesson"
)

func main() {
	fmt.Println("seeding lesson catalog into database...")

	err := godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	DSN := os.Getenv("DB_DSN")

	pool, err := pgxpool.New(context.Background(), DSN)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	lessons := []lesson.Lesson{
		{
			ID:      "lesson-1",
			Ordinal: 1,
			Title:   "Introduction to Python",
			Topics: []lesson.Topic{
				{
					ID:          "lesson-1-topic-1",
					Title:       "What is Python?",
					Content:     "Python is like a magical language that helps us tell computers what to do! It's one of the easiest programming languages to learn.",
					CodeExample: `print("Hello, Python World!")`,
				},
				{
					ID:          "lesson-1-topic-2",
					Title:       "Variables",
					Content:     "Variables are like special boxes where we can store different things - numbers, words, or even lists of things!",
					CodeExample: "name = \"PyBot\"\nage = 3\nprint(f\"I am {name} and I am {age} years old!\")",
				},
			},
			Quiz: lesson.Quiz{
				ID: "lesson-1-quiz",
				Questions: []lesson.Question{
					{
						ID:            "lesson-1-quiz-q1",
						Text:          "What do we use to show a message on the screen?",
						Options:       []string{"print()", "say()", "show()", "talk()"},
						CorrectAnswer: 0,
					},
					{
						ID:            "lesson-1-quiz-q2",
						Text:          "A variable is like a...",
						Options:       []string{"magic wand", "special box", "computer", "snake"},
						CorrectAnswer: 1,
					},
				},
			},
		},
	}

	query := `
		INSERT INTO lessons (id, ordinal, title, topics, quiz)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET ordinal = EXCLUDED.ordinal, title = EXCLUDED.title,
		    topics = EXCLUDED.topics, quiz = EXCLUDED.quiz
	`
	for _, l := range lessons {
		topics, err := json.Marshal(l.Topics)
		if err != nil {
			log.Fatalf("cannot marshal topics for %s: %v", l.ID, err)
		}
		quiz, err := json.Marshal(l.Quiz)
		if err != nil {
			log.Fatalf("cannot marshal quiz for %s: %v", l.ID, err)
		}
		if _, err := pool.Exec(context.Background(), query, l.ID, l.Ordinal, l.Title, topics, quiz); err != nil {
			log.Fatalf("cannot insert lesson %s: %v", l.ID, err)
		}
	}

	fmt.Printf("seeded %d lesson(s).\n", len(lessons))
}
