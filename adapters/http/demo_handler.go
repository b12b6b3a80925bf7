package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	solveUC "github.com/khoahotran/ai-problem-solver/internal/application/usecase/solve"
)

type DemoHandler struct{}

func NewDemoHandler() *DemoHandler {
	return &DemoHandler{}
}

func (h *DemoHandler) ListExamples(c *gin.Context) {
	examples := solveUC.DemoExamples()
	dtos := make([]DemoExampleDTO, len(examples))
	for i, e := range examples {
		dtos[i] = ToDemoExampleDTO(e)
	}
	c.JSON(http.StatusOK, dtos)
}
