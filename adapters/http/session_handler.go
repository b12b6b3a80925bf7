package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	sessionUC "github.com/khoahotran/ai-problem-solver/internal/application/usecase/session"
	"github.com/khoahotran/ai-problem-solver/internal/domain/solution"
	"github.com/khoahotran/ai-problem-solver/pkg/apperror"
	"github.com/khoahotran/ai-problem-solver/pkg/logger"
)

type SessionHandler struct {
	sessionUseCase *sessionUC.SessionUseCase
	logger         logger.Logger
}

func NewSessionHandler(uc *sessionUC.SessionUseCase, log logger.Logger) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: uc,
		logger:         log,
	}
}

func (h *SessionHandler) CreateSession(c *gin.Context) {
	output, err := h.sessionUseCase.Create(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, CreateSessionResponse{
		Token:   output.Token,
		Session: ToSessionDTO(output.Session),
	})
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	sessionID, ok := GetSessionIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("sessionID not found in context", nil))
		return
	}

	s, err := h.sessionUseCase.Get(c.Request.Context(), sessionID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToSessionDTO(s))
}

func (h *SessionHandler) Submit(c *gin.Context) {
	sessionID, ok := GetSessionIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("sessionID not found in context", nil))
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body", err))
		return
	}

	mode, err := solution.ParseMode(req.Mode)
	if err != nil {
		c.Error(apperror.NewInvalidInput("mode must be one of solver, code, explain", err))
		return
	}

	s, err := h.sessionUseCase.Submit(c.Request.Context(), sessionUC.SubmitInput{
		SessionID: sessionID,
		Problem:   req.Problem,
		Mode:      mode,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToSessionDTO(s))
}
