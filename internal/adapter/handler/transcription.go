package handler

import (
	stdErrors "errors"
	"io"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/transcription"
)

// Transcription handles recording intake and transcription webhooks
type Transcription struct {
	service transcription.Service
	logger  *zap.Logger
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(service transcription.Service, logger *zap.Logger) *Transcription {
	return &Transcription{
		service: service,
		logger:  logger,
	}
}

// UploadRecording handles POST /recordings
// @Summary      Upload a meeting recording
// @Description  Stores the recording and submits it for transcription; the finished transcript is processed automatically
// @Tags         Recordings
// @Accept       multipart/form-data
// @Produce      json
// @Param        file    formData  file    true   "Audio recording"
// @Param        title   formData  string  true   "Meeting title"
// @Param        agenda  formData  string  false  "Meeting agenda"
// @Success      200     {object}  transcription.Submission
// @Failure      400     {object}  map[string]interface{}  "Missing file or title"
// @Router       /recordings [post]
func (h *Transcription) UploadRecording(c echo.Context) error {
	title := c.FormValue("title")
	if title == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("title is required"))
	}
	agenda := c.FormValue("agenda")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrMissingRecording())
	}

	file, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrRecordingUploadFailed(err))
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	submission, err := h.service.SubmitRecording(
		c.Request().Context(),
		title,
		agenda,
		fileHeader.Filename,
		file,
		fileHeader.Size,
		contentType,
	)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrTranscriptionFailed(err))
	}
	return HandleSuccess(h.logger, c, submission)
}

// TranscriptionWebhook handles POST /webhooks/transcription
// @Summary      Transcription completion webhook
// @Description  Receives the provider callback and runs the finished transcript through extraction
// @Tags         Recordings
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}  "Invalid payload or signature"
// @Router       /webhooks/transcription [post]
func (h *Transcription) TranscriptionWebhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	signature := c.Request().Header.Get("X-Signature")
	if err := h.service.HandleWebhook(c.Request().Context(), payload, signature); err != nil {
		var appErr errors.AppError
		if !stdErrors.As(err, &appErr) {
			err = errors.ErrTranscriptionFailed(err)
		}
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"processed": true})
}
