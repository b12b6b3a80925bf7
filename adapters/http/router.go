package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/ai-problem-solver/pkg/auth"
	"github.com/khoahotran/ai-problem-solver/pkg/logger"
)

type Handlers struct {
	Solve   *SolveHandler
	Session *SessionHandler
	Demo    *DemoHandler
	Stats   *StatsHandler
}

func NewRouter(h Handlers, jwtSvc *auth.JWTService, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log), ErrorMiddleware(log))

	sessionMiddleware := SessionMiddleware(jwtSvc, log)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
		api.POST("/solve", h.Solve.Solve)
		api.GET("/demo/examples", h.Demo.ListExamples)
		api.GET("/stats", h.Stats.GetStats)
		api.POST("/sessions", h.Session.CreateSession)

		private := api.Group("/session")
		private.Use(sessionMiddleware)
		{
			private.GET("", h.Session.GetSession)
			private.POST("/submit", h.Session.Submit)
		}
	}

	return router
}
