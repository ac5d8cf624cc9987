package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	chatUC "github.com/pybotlabs/pybot-api/internal/application/usecase/chat"
	"github.com/pybotlabs/pybot-api/pkg/apperror"
	"github.com/pybotlabs/pybot-api/pkg/logger"
)

type ChatHandler struct {
	chatUseCase *chatUC.ChatUseCase
	logger      logger.Logger
}

func NewChatHandler(uc *chatUC.ChatUseCase, log logger.Logger) *ChatHandler {
	return &ChatHandler{
		chatUseCase: uc,
		logger:      log,
	}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	subjectID, ok := GetSubjectIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewInternal("subjectID not found in context", nil))
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body", err))
		return
	}

	input := chatUC.ChatInput{
		SubjectID: subjectID,
		Message:   req.Message,
		History:   req.ToDomainTurns(),
	}

	output, err := h.chatUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Response: output.Reply})
}
