package routes

import (
	"github.com/Perfect-Cube/Reflex/internal/api/handlers"
	"github.com/gin-gonic/gin"
)

type Deps struct {
	Interview  *handlers.InterviewHandler
	Report     *handlers.ReportHandler
	Feedback   *handlers.FeedbackHandler
	Proctor    *handlers.ProctorHandler
	Simulation *handlers.SimulationHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	api.POST("/interview/start", d.Interview.Start)
	api.POST("/interview/:interview_id/chat", d.Interview.Chat)
	api.GET("/interviews", d.Interview.List)
	api.GET("/interview/:interview_id/transcript", d.Interview.Transcript)

	api.GET("/report/:interview_id", d.Report.Get)

	api.POST("/feedback", d.Feedback.Submit)

	api.GET("/simulations", d.Simulation.ListRecent)

	// WebSocket
	api.GET("/ws/proctoring/:interview_id", d.Proctor.ProctorWS)
	api.GET("/ws/simulation", d.Simulation.SimulationWS)
}
