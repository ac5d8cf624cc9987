package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	executeUC "github.com/pybotlabs/pybot-api/internal/application/usecase/execute"
	"github.com/pybotlabs/pybot-api/pkg/apperror"
)

type ExecuteHandler struct {
	executeUseCase *executeUC.ExecuteUseCase
}

func NewExecuteHandler(uc *executeUC.ExecuteUseCase) *ExecuteHandler {
	return &ExecuteHandler{executeUseCase: uc}
}

func (h *ExecuteHandler) Execute(c *gin.Context) {
	subjectID, ok := GetSubjectIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewInternal("subjectID not found in context", nil))
		return
	}

	var req ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body", err))
		return
	}

	input := executeUC.ExecuteInput{SubjectID: subjectID, Code: req.Code}
	output, err := h.executeUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ExecuteResponse{Output: output.Output, Error: output.Error})
}
