package chat

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/pybotlabs/pybot-api/internal/application/service"
	chatdomain "github.com/pybotlabs/pybot-api/internal/domain/chat"
	"github.com/pybotlabs/pybot-api/internal/domain/profile"
	"github.com/pybotlabs/pybot-api/pkg/apperror"
	"github.com/pybotlabs/pybot-api/pkg/logger"
)

type ChatUseCase struct {
	profileRepo profile.Repository
	tutor       service.TutorService
	logger      logger.Logger
}

func NewChatUseCase(repo profile.Repository, tutor service.TutorService, log logger.Logger) *ChatUseCase {
	return &ChatUseCase{
		profileRepo: repo,
		tutor:       tutor,
		logger:      log,
	}
}

type ChatInput struct {
	SubjectID uuid.UUID
	Message   string
	History   []chatdomain.Turn
}

type ChatOutput struct {
	Reply string
}

var tracer = otel.Tracer("chat_usecase")

// Execute loads the student's stored state, conditions the tutor with a
// persona built from it, and relays one assistant reply. The persona is
// assembled fresh on every call so tone and difficulty always reflect
// the latest stored lesson and preferences. Nothing is persisted.
func (uc *ChatUseCase) Execute(ctx context.Context, input ChatInput) (*ChatOutput, error) {
	ctx, span := tracer.Start(ctx, "Execute")
	defer span.End()
	span.SetAttributes(attribute.String("subject_id", input.SubjectID.String()))

	p, err := uc.profileRepo.GetBySubject(ctx, input.SubjectID)
	if err != nil {
		// A chat cannot be contextualized without a profile; NotFound
		// propagates instead of tutoring with undefined persona fields.
		span.RecordError(err)
		return nil, err
	}

	persona := buildPersona(p)

	reply, err := uc.tutor.GenerateReply(ctx, persona, input.History, input.Message)
	if err != nil {
		uc.logger.Error("Tutor completion failed", err, zap.String("subject_id", input.SubjectID.String()))
		err = apperror.NewUpstream("completion provider", err)
		span.RecordError(err)
		return nil, err
	}

	return &ChatOutput{Reply: reply}, nil
}

func buildPersona(p *profile.Profile) string {
	return fmt.Sprintf(
		`You are PyBot, a friendly Python tutor for kids. The student is currently on lesson %d.
Keep explanations simple and fun. Use analogies and examples that kids can understand.
Current learning style: %s
Learning pace: %s`,
		p.CurrentLesson,
		p.Preferences.Style,
		p.Preferences.Pace,
	)
}
