package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	solveUC "github.com/khoahotran/ai-problem-solver/internal/application/usecase/solve"
	"github.com/khoahotran/ai-problem-solver/pkg/logger"
)

const solveFailedMessage = "Failed to solve problem"

type SolveHandler struct {
	solveUseCase *solveUC.SolveUseCase
	logger       logger.Logger
}

func NewSolveHandler(uc *solveUC.SolveUseCase, log logger.Logger) *SolveHandler {
	return &SolveHandler{
		solveUseCase: uc,
		logger:       log,
	}
}

// Solve has a flat error contract: every failure,
// including a malformed body, is a 500 with one generic message.
func (h *SolveHandler) Solve(c *gin.Context) {
	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Error in solve API", err, zap.String("stage", "bind"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": solveFailedMessage})
		return
	}

	output, err := h.solveUseCase.Execute(c.Request.Context(), solveUC.SolveInput{
		Problem: req.Problem,
		Type:    req.Type,
	})
	if err != nil {
		h.logger.Error("Error in solve API", err, zap.String("type", req.Type))
		c.JSON(http.StatusInternalServerError, gin.H{"error": solveFailedMessage})
		return
	}

	if output.Structured != nil {
		c.JSON(http.StatusOK, ToSolutionDTO(output.Structured))
		return
	}
	c.JSON(http.StatusOK, SolveTextResponse{Solution: output.Text})
}
