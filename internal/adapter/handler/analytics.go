package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	meetingUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/meeting"
)

// Analytics handles aggregate reporting requests
type Analytics struct {
	service meetingUsecase.Service
	logger  *zap.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(service meetingUsecase.Service, logger *zap.Logger) *Analytics {
	return &Analytics{
		service: service,
		logger:  logger,
	}
}

// Summary handles GET /analytics/summary
// @Summary      Aggregate analytics
// @Description  Returns meeting and action item totals with completion rate
// @Tags         Analytics
// @Produce      json
// @Success      200  {object}  meeting.AnalyticsSummary
// @Router       /analytics/summary [get]
func (h *Analytics) Summary(c echo.Context) error {
	summary, err := h.service.Analytics(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, summary)
}
