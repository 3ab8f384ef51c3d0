package handler

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/transcription"
)

// fakeTranscription implements transcription.Service with canned responses
type fakeTranscription struct {
	submission *transcription.Submission
	submitErr  error
	webhookErr error
}

func (f *fakeTranscription) SubmitRecording(context.Context, string, string, string, io.Reader, int64, string) (*transcription.Submission, error) {
	return f.submission, f.submitErr
}

func (f *fakeTranscription) HandleWebhook(context.Context, []byte, string) error {
	return f.webhookErr
}

func postWebhook(t *testing.T, svc transcription.Service) *httptest.ResponseRecorder {
	t.Helper()
	h := NewTranscriptionHandler(svc, nil)

	e := newEcho()
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/transcription",
		strings.NewReader(`{"transcript_id": "t-1", "status": "completed"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.TranscriptionWebhook(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestTranscriptionWebhook_KeepsServiceErrorCode(t *testing.T) {
	svc := &fakeTranscription{webhookErr: errors.ErrAIServiceUnavailable("assemblyai")}

	rec := postWebhook(t, svc)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Code int `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if errors.ErrorCode(body.Code) != errors.ErrorCode_AI_SERVICE_UNAVAILABLE {
		t.Errorf("code = %d, want AI_SERVICE_UNAVAILABLE", body.Code)
	}
}

func TestTranscriptionWebhook_WrapsPlainError(t *testing.T) {
	svc := &fakeTranscription{webhookErr: stdErrors.New("unknown transcript: ghost")}

	rec := postWebhook(t, svc)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Code int `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if errors.ErrorCode(body.Code) != errors.ErrorCode_TRANSCRIPTION_FAILED {
		t.Errorf("code = %d, want TRANSCRIPTION_FAILED", body.Code)
	}
}
