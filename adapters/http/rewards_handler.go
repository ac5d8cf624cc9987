package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	rewardsUC "github.com/pybotlabs/pybot-api/internal/application/usecase/rewards"
	"github.com/pybotlabs/pybot-api/pkg/apperror"
)

type RewardsHandler struct {
	rewardsUseCase *rewardsUC.RewardsUseCase
}

func NewRewardsHandler(uc *rewardsUC.RewardsUseCase) *RewardsHandler {
	return &RewardsHandler{rewardsUseCase: uc}
}

func (h *RewardsHandler) GetRewards(c *gin.Context) {
	subjectID, ok := GetSubjectIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewInternal("subjectID not found in context", nil))
		return
	}

	input := rewardsUC.GetRewardsInput{SubjectID: subjectID}
	output, err := h.rewardsUseCase.ExecuteGet(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToRewardsResponse(output.Stickers, output.Streak))
}
