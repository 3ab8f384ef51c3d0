package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	meetingdto "github.com/johnquangdev/meeting-minutes/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	meetingUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/meeting"
)

// ActionItem handles action item HTTP requests
type ActionItem struct {
	service meetingUsecase.Service
	logger  *zap.Logger
}

// NewActionItemHandler creates a new action item handler
func NewActionItemHandler(service meetingUsecase.Service, logger *zap.Logger) *ActionItem {
	return &ActionItem{
		service: service,
		logger:  logger,
	}
}

// CreateActionItem handles POST /action-items
// @Summary      Create an action item
// @Description  Adds a manual action item to an existing meeting
// @Tags         ActionItems
// @Accept       json
// @Produce      json
// @Param        request  body      meeting.CreateActionItemRequest  true  "Action item"
// @Success      200      {object}  meeting.ActionItemResponse
// @Failure      404      {object}  map[string]interface{}  "Meeting not found"
// @Router       /action-items [post]
func (h *ActionItem) CreateActionItem(c echo.Context) error {
	var req meetingdto.CreateActionItemRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	meetingID, err := uuid.Parse(req.MeetingID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting ID"))
	}

	item, err := h.service.CreateActionItem(c.Request().Context(), meetingID, req.Description, req.Owner, req.DueDate)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, meetingdto.NewActionItemResponse(item))
}

// ListActionItems handles GET /action-items
// @Summary      List all action items
// @Tags         ActionItems
// @Produce      json
// @Success      200  {array}  meeting.ActionItemResponse
// @Router       /action-items [get]
func (h *ActionItem) ListActionItems(c echo.Context) error {
	items, err := h.service.ListActionItems(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, meetingdto.NewActionItemResponses(items))
}

// ListMeetingActionItems handles GET /meetings/:id/action-items
// @Summary      List a meeting's action items
// @Tags         ActionItems
// @Produce      json
// @Param        id   path     string  true  "Meeting ID"
// @Success      200  {array}  meeting.ActionItemResponse
// @Failure      404  {object} map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id}/action-items [get]
func (h *ActionItem) ListMeetingActionItems(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting ID"))
	}

	items, err := h.service.ListMeetingActionItems(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, meetingdto.NewActionItemResponses(items))
}

// UpdateActionItem handles PUT /action-items/:id
// @Summary      Update an action item
// @Tags         ActionItems
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Action item ID"
// @Param        request  body      meeting.UpdateActionItemRequest  true  "Fields to update"
// @Success      200      {object}  meeting.ActionItemResponse
// @Failure      404      {object}  map[string]interface{}  "Action item not found"
// @Router       /action-items/{id} [put]
func (h *ActionItem) UpdateActionItem(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid action item ID"))
	}

	var req meetingdto.UpdateActionItemRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	item, err := h.service.UpdateActionItem(c.Request().Context(), id, repositories.ActionItemUpdate{
		Description: req.Description,
		Owner:       req.Owner,
		DueDate:     req.DueDate,
		Status:      req.Status,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, meetingdto.NewActionItemResponse(item))
}

// SetStatus handles PATCH /action-items/:id/status
// @Summary      Set action item status
// @Description  Marks an action item complete or incomplete
// @Tags         ActionItems
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Action item ID"
// @Param        request  body      meeting.SetStatusRequest  true  "New status"
// @Success      200      {object}  meeting.ActionItemResponse
// @Failure      404      {object}  map[string]interface{}  "Action item not found"
// @Router       /action-items/{id}/status [patch]
func (h *ActionItem) SetStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid action item ID"))
	}

	var req meetingdto.SetStatusRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	item, err := h.service.SetActionItemStatus(c.Request().Context(), id, *req.Status)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, meetingdto.NewActionItemResponse(item))
}

// DeleteActionItem handles DELETE /action-items/:id
// @Summary      Delete an action item
// @Tags         ActionItems
// @Produce      json
// @Param        id   path      string  true  "Action item ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}  "Action item not found"
// @Router       /action-items/{id} [delete]
func (h *ActionItem) DeleteActionItem(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid action item ID"))
	}

	if err := h.service.DeleteActionItem(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"deleted": id})
}
