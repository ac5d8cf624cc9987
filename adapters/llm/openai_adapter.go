package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/pybotlabs/pybot-api/internal/application/service"
	"github.com/pybotlabs/pybot-api/internal/config"
	chatdomain "github.com/pybotlabs/pybot-api/internal/domain/chat"
	"github.com/pybotlabs/pybot-api/pkg/logger"
)

type openAITutorAdapter struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	log         logger.Logger
}

// NewOpenAITutorAdapter wraps the completion provider. Sampling
// temperature and the reply-length cap are fixed policy knobs from
// config, not per-request parameters.
func NewOpenAITutorAdapter(cfg config.Config, log logger.Logger) (service.TutorService, error) {
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is not configured")
	}

	clientConfig := openai.DefaultConfig(cfg.OpenAI.APIKey)
	if cfg.OpenAI.BaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAI.BaseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	log.Info("OpenAI Tutor Adapter initialized", zap.String("model", cfg.OpenAI.Model))
	return &openAITutorAdapter{
		client:      client,
		model:       cfg.OpenAI.Model,
		temperature: cfg.OpenAI.Temperature,
		maxTokens:   cfg.OpenAI.MaxTokens,
		log:         log,
	}, nil
}

func (a *openAITutorAdapter) GenerateReply(ctx context.Context, persona string, history []chatdomain.Turn, message string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: persona,
	})
	for _, turn := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(turn.Role),
			Content: turn.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	req := openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    messages,
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion provider returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
