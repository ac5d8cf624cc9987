package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	lessonUC "github.com/pybotlabs/pybot-api/internal/application/usecase/lesson"
)

type LessonHandler struct {
	catalogUseCase *lessonUC.CatalogUseCase
}

func NewLessonHandler(uc *lessonUC.CatalogUseCase) *LessonHandler {
	return &LessonHandler{catalogUseCase: uc}
}

func (h *LessonHandler) ListLessons(c *gin.Context) {
	output, err := h.catalogUseCase.ExecuteList(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]LessonDTO, len(output.Lessons))
	for i, l := range output.Lessons {
		dtos[i] = ToLessonDTO(l)
	}
	c.JSON(http.StatusOK, gin.H{"lessons": dtos})
}
