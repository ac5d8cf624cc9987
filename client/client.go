// Package client is the typed Go counterpart of the browser's fetch
// helper: it resolves the current session token, attaches it as a
// bearer header on every call, and turns any non-success status into a
// uniform APIError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TokenSource resolves the caller's current session token, typically
// from the identity service's client SDK.
type TokenSource func(ctx context.Context) (string, error)

type Client struct {
	baseURL string
	tokens  TokenSource
	httpc   *http.Client
}

type Option func(*Client)

func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is the uniform failure for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %d %s", e.StatusCode, e.Message)
}

type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ExecuteResult struct {
	Output string  `json:"output"`
	Error  *string `json:"error"`
}

type LearningPreferences struct {
	Style string `json:"style"`
	Pace  string `json:"pace"`
}

type Profile struct {
	SubjectID           string              `json:"subjectId"`
	DisplayName         string              `json:"displayName"`
	Birthdate           *time.Time          `json:"birthdate,omitempty"`
	AvatarID            string              `json:"avatarId"`
	CurrentLesson       int                 `json:"currentLesson"`
	CompletedQuizzes    []string            `json:"completedQuizzes"`
	QuizScores          map[string]float64  `json:"quizScores"`
	LearningPreferences LearningPreferences `json:"learningPreferences"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

type Progress struct {
	CurrentLesson    int                `json:"currentLesson"`
	CompletedQuizzes []string           `json:"completedQuizzes"`
	QuizScores       map[string]float64 `json:"quizScores"`
}

type ProfileUpdate struct {
	DisplayName         *string              `json:"displayName,omitempty"`
	Birthdate           *time.Time           `json:"birthdate,omitempty"`
	AvatarID            *string              `json:"avatarId,omitempty"`
	LearningPreferences *LearningPreferences `json:"learningPreferences,omitempty"`
}

type Sticker struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ImageURL       string `json:"imageUrl"`
	EvolutionLevel int    `json:"evolutionLevel"`
	Description    string `json:"description"`
}

type Streak struct {
	CurrentStreak        int `json:"currentStreak"`
	HighestStreak        int `json:"highestStreak"`
	TopicsCompletedToday int `json:"topicsCompletedToday"`
}

type Rewards struct {
	Stickers []Sticker `json:"stickers"`
	Streak   Streak    `json:"streak"`
}

type Topic struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	CodeExample string `json:"codeExample,omitempty"`
}

type Question struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

type Quiz struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
}

type Lesson struct {
	ID      string  `json:"id"`
	Ordinal int     `json:"ordinal"`
	Title   string  `json:"title"`
	Topics  []Topic `json:"topics"`
	Quiz    Quiz    `json:"quiz"`
}

// SendChatMessage relays one tutoring message along with the running
// conversation and returns the assistant's reply.
func (c *Client) SendChatMessage(ctx context.Context, message string, history []Turn) (string, error) {
	if history == nil {
		history = []Turn{}
	}
	body := map[string]any{"message": message, "context": history}
	var out struct {
		Response string `json:"response"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/chat", body, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

func (c *Client) ExecutePythonCode(ctx context.Context, code string) (*ExecuteResult, error) {
	body := map[string]any{"code": code}
	var out ExecuteResult
	if err := c.do(ctx, http.MethodPost, "/api/execute", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProgress(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodGet, "/api/progress", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProgress(ctx context.Context, progress Progress) error {
	return c.do(ctx, http.MethodPost, "/api/progress", progress, nil)
}

func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodPut, "/api/profile", update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetRewards(ctx context.Context) (*Rewards, error) {
	var out Rewards
	if err := c.do(ctx, http.MethodGet, "/api/rewards", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListLessons(ctx context.Context) ([]Lesson, error) {
	var out struct {
		Lessons []Lesson `json:"lessons"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/lessons", nil, &out); err != nil {
		return nil, err
	}
	return out.Lessons, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	token, err := c.tokens(ctx)
	if err != nil {
		return fmt.Errorf("no user logged in: %w", err)
	}

	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
		var errBody struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(data, &errBody); err == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}
