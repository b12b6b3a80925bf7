package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	statsUC "github.com/khoahotran/ai-problem-solver/internal/application/usecase/stats"
	"github.com/khoahotran/ai-problem-solver/pkg/logger"
)

type StatsHandler struct {
	statsUseCase *statsUC.StatsUseCase
	logger       logger.Logger
}

func NewStatsHandler(uc *statsUC.StatsUseCase, log logger.Logger) *StatsHandler {
	return &StatsHandler{
		statsUseCase: uc,
		logger:       log,
	}
}

func (h *StatsHandler) GetStats(c *gin.Context) {
	output, err := h.statsUseCase.Get(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToStatsDTO(output))
}
