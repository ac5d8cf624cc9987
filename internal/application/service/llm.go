package service

import (
	"context"

	"github.com/pybotlabs/pybot-api/internal/domain/chat"
)

// TutorService produces one assistant utterance from the persona, the
// client-supplied history, and the new student message.
type TutorService interface {
	GenerateReply(ctx context.Context, persona string, history []chat.Turn, message string) (string, error)
}
