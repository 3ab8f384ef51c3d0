package handler

import (
	stdErrors "errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	meetingdto "github.com/johnquangdev/meeting-minutes/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	meetingUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/meeting"
)

// Meeting handles meeting-related HTTP requests
type Meeting struct {
	service            meetingUsecase.Service
	logger             *zap.Logger
	maxTranscriptChars int
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(service meetingUsecase.Service, logger *zap.Logger, maxTranscriptChars int) *Meeting {
	return &Meeting{
		service:            service,
		logger:             logger,
		maxTranscriptChars: maxTranscriptChars,
	}
}

// ProcessMeeting handles POST /meetings/process
// @Summary      Process a meeting transcript
// @Description  Runs AI extraction over a raw transcript and persists the meeting with its action items
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        request  body      meeting.ProcessMeetingRequest  true  "Transcript to process"
// @Success      200      {object}  map[string]interface{}  "Extraction result"
// @Failure      400      {object}  map[string]interface{}  "Invalid request"
// @Router       /meetings/process [post]
func (h *Meeting) ProcessMeeting(c echo.Context) error {
	var req meetingdto.ProcessMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	result, err := h.service.ProcessTranscript(c.Request().Context(), req.Title, req.Transcript, req.Agenda)
	if err != nil {
		return HandleError(h.logger, c, h.translateTranscriptError(err))
	}

	return HandleSuccess(h.logger, c, result)
}

// GetMeeting handles GET /meetings/:id
// @Summary      Get a meeting
// @Description  Returns one meeting with its decoded decisions, agenda coverage and action items
// @Tags         Meetings
// @Produce      json
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {object}  meeting.MeetingDetailResponse
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id} [get]
func (h *Meeting) GetMeeting(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting ID"))
	}

	details, err := h.service.GetMeetingWithActionItems(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	resp := meetingdto.MeetingDetailResponse{
		MeetingResponse: meetingdto.MeetingResponse{
			ID:             details.Meeting.ID,
			Title:          details.Meeting.Title,
			Agenda:         details.Meeting.Agenda,
			Summary:        details.Meeting.Summary,
			Decisions:      details.Decisions,
			AgendaCoverage: details.AgendaCoverage,
			CreatedAt:      details.Meeting.CreatedAt,
			UpdatedAt:      details.Meeting.UpdatedAt,
		},
		ActionItems: meetingdto.NewActionItemResponses(details.ActionItems),
	}
	return HandleSuccess(h.logger, c, resp)
}

// ListMeetings handles GET /meetings
// @Summary      List meetings
// @Description  Returns recent meetings, newest first
// @Tags         Meetings
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of meetings (default 50)"
// @Success      200    {array}   meeting.MeetingResponse
// @Router       /meetings [get]
func (h *Meeting) ListMeetings(c echo.Context) error {
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("limit must be a positive integer"))
		}
		limit = parsed
	}

	meetings, err := h.service.ListMeetings(c.Request().Context(), limit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	out := make([]*meetingdto.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		resp, err := meetingdto.NewMeetingResponse(m)
		if err != nil {
			return HandleError(h.logger, c, err)
		}
		out = append(out, resp)
	}
	return HandleSuccess(h.logger, c, out)
}

// UpdateMeeting handles PUT /meetings/:id
// @Summary      Update a meeting
// @Description  Applies a partial update to a meeting's title, summary or decisions
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Meeting ID"
// @Param        request  body      meeting.UpdateMeetingRequest  true  "Fields to update"
// @Success      200      {object}  meeting.MeetingResponse
// @Failure      404      {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id} [put]
func (h *Meeting) UpdateMeeting(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting ID"))
	}

	var req meetingdto.UpdateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	updated, err := h.service.UpdateMeeting(c.Request().Context(), id, repositories.MeetingUpdate{
		Title:     req.Title,
		Summary:   req.Summary,
		Decisions: req.Decisions,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	resp, err := meetingdto.NewMeetingResponse(updated)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, resp)
}

// DeleteMeeting handles DELETE /meetings/:id
// @Summary      Delete a meeting
// @Description  Removes a meeting and all of its action items
// @Tags         Meetings
// @Produce      json
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id} [delete]
func (h *Meeting) DeleteMeeting(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting ID"))
	}

	if err := h.service.DeleteMeeting(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"deleted": id})
}

// QuickSummary handles POST /meetings/quick-summary
// @Summary      Quick transcript summary
// @Description  Returns a short immediate summary without persisting anything
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        request  body      meeting.QuickSummaryRequest  true  "Transcript to summarize"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]interface{}  "Invalid request"
// @Router       /meetings/quick-summary [post]
func (h *Meeting) QuickSummary(c echo.Context) error {
	var req meetingdto.QuickSummaryRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	summary, err := h.service.QuickSummary(c.Request().Context(), req.Transcript)
	if err != nil {
		return HandleError(h.logger, c, h.translateTranscriptError(err))
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"summary": summary})
}

// translateTranscriptError maps transcript validation sentinels to client
// errors carrying the configured bound
func (h *Meeting) translateTranscriptError(err error) error {
	if stdErrors.Is(err, entities.ErrTranscriptTooLong) {
		return errors.ErrTranscriptTooLong(h.maxTranscriptChars)
	}
	return err
}
