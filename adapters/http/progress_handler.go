package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	profileUC "github.com/pybotlabs/pybot-api/internal/application/usecase/profile"
	progressUC "github.com/pybotlabs/pybot-api/internal/application/usecase/progress"
	"github.com/pybotlabs/pybot-api/internal/domain/profile"
	"github.com/pybotlabs/pybot-api/pkg/apperror"
	"github.com/pybotlabs/pybot-api/pkg/logger"
)

type ProgressHandler struct {
	progressUseCase *progressUC.ProgressUseCase
	profileUseCase  *profileUC.ProfileUseCase
	logger          logger.Logger
}

func NewProgressHandler(progressUC *progressUC.ProgressUseCase, profileUC *profileUC.ProfileUseCase, log logger.Logger) *ProgressHandler {
	return &ProgressHandler{
		progressUseCase: progressUC,
		profileUseCase:  profileUC,
		logger:          log,
	}
}

func (h *ProgressHandler) GetProgress(c *gin.Context) {
	subjectID, ok := GetSubjectIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewInternal("subjectID not found in context", nil))
		return
	}

	input := progressUC.GetProgressInput{SubjectID: subjectID}
	output, err := h.progressUseCase.ExecuteGet(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProgressHandler) UpdateProgress(c *gin.Context) {
	subjectID, ok := GetSubjectIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewInternal("subjectID not found in context", nil))
		return
	}

	var req UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for progress update", err))
		return
	}

	input := progressUC.UpdateProgressInput{
		SubjectID:        subjectID,
		CurrentLesson:    req.CurrentLesson,
		CompletedQuizzes: req.CompletedQuizzes,
		QuizScores:       req.QuizScores,
	}
	if err := h.progressUseCase.ExecuteUpdate(c.Request.Context(), input); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ProgressHandler) UpdateProfile(c *gin.Context) {
	subjectID, ok := GetSubjectIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewInternal("subjectID not found in context", nil))
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile update", err))
		return
	}

	input := profileUC.UpdateProfileInput{
		SubjectID:   subjectID,
		DisplayName: req.DisplayName,
		Birthdate:   req.Birthdate,
		AvatarID:    req.AvatarID,
	}
	if req.LearningPreferences != nil {
		style := profile.LearningStyle(req.LearningPreferences.Style)
		pace := profile.LearningPace(req.LearningPreferences.Pace)
		input.Style = &style
		input.Pace = &pace
	}

	output, err := h.profileUseCase.ExecuteUpdate(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}
