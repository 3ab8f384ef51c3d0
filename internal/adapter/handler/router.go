package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg                  *config.Config
	meetingHandler       *Meeting
	actionItemHandler    *ActionItem
	analyticsHandler     *Analytics
	transcriptionHandler *Transcription
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	meetingHandler *Meeting,
	actionItemHandler *ActionItem,
	analyticsHandler *Analytics,
	transcriptionHandler *Transcription,
) *Router {
	return &Router{
		cfg:                  cfg,
		meetingHandler:       meetingHandler,
		actionItemHandler:    actionItemHandler,
		analyticsHandler:     analyticsHandler,
		transcriptionHandler: transcriptionHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)

	v1 := e.Group("/v1")

	rt.setupMeetingRoutes(v1)
	rt.setupActionItemRoutes(v1)
	rt.setupAnalyticsRoutes(v1)
	rt.setupTranscriptionRoutes(v1)
}

func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")

	meetings.POST("/process", rt.meetingHandler.ProcessMeeting)
	meetings.POST("/quick-summary", rt.meetingHandler.QuickSummary)
	meetings.GET("", rt.meetingHandler.ListMeetings)
	meetings.GET("/:id", rt.meetingHandler.GetMeeting)
	meetings.PUT("/:id", rt.meetingHandler.UpdateMeeting)
	meetings.DELETE("/:id", rt.meetingHandler.DeleteMeeting)
	meetings.GET("/:id/action-items", rt.actionItemHandler.ListMeetingActionItems)
}

func (rt *Router) setupActionItemRoutes(g *echo.Group) {
	items := g.Group("/action-items")

	items.POST("", rt.actionItemHandler.CreateActionItem)
	items.GET("", rt.actionItemHandler.ListActionItems)
	items.PUT("/:id", rt.actionItemHandler.UpdateActionItem)
	items.PATCH("/:id/status", rt.actionItemHandler.SetStatus)
	items.DELETE("/:id", rt.actionItemHandler.DeleteActionItem)
}

func (rt *Router) setupAnalyticsRoutes(g *echo.Group) {
	g.GET("/analytics/summary", rt.analyticsHandler.Summary)
}

func (rt *Router) setupTranscriptionRoutes(g *echo.Group) {
	if rt.transcriptionHandler == nil {
		g.POST("/recordings", rt.notConfigured)
		g.POST("/webhooks/transcription", rt.notConfigured)
		return
	}
	g.POST("/recordings", rt.transcriptionHandler.UploadRecording)
	g.POST("/webhooks/transcription", rt.transcriptionHandler.TranscriptionWebhook)
}

// notConfigured is used when recording intake was disabled at startup
func (rt *Router) notConfigured(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "Recording intake is not configured",
		"message": "Set ASSEMBLYAI_API_KEY and storage credentials to enable it",
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
