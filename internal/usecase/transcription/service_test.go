package transcription

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	stdErrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/google/uuid"

	apperrors "github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// fakeStore serves uploaded recordings over an httptest server so the
// submission path can download them
type fakeStore struct {
	baseURL string
	objects map[string][]byte
}

func (s *fakeStore) UploadRecording(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.objects[objectName] = data
	return nil
}

func (s *fakeStore) RecordingURL(_ context.Context, objectName string, _ time.Duration) (string, error) {
	return s.baseURL + "/" + objectName, nil
}

type fakeAPI struct {
	transcriptID  *string
	transcribeErr error
	text          *string
	getErr        error
	submissions   int
}

func (a *fakeAPI) Upload(context.Context, io.Reader) (string, error) {
	return "https://cdn.example/upload", nil
}

func (a *fakeAPI) TranscribeFromURL(context.Context, string, *aai.TranscriptOptionalParams) (aai.Transcript, error) {
	a.submissions++
	if a.transcribeErr != nil {
		return aai.Transcript{}, a.transcribeErr
	}
	return aai.Transcript{ID: a.transcriptID}, nil
}

func (a *fakeAPI) GetTranscript(context.Context, string) (aai.Transcript, error) {
	if a.getErr != nil {
		return aai.Transcript{}, a.getErr
	}
	return aai.Transcript{ID: a.transcriptID, Text: a.text}, nil
}

// stubMeetings records ProcessTranscript calls; other methods are unused
type stubMeetings struct {
	meeting.Service
	result         *meeting.ProcessResult
	err            error
	lastTranscript string
}

func (m *stubMeetings) ProcessTranscript(_ context.Context, _, transcript, _ string) (*meeting.ProcessResult, error) {
	m.lastTranscript = transcript
	return m.result, m.err
}

func str(s string) *string { return &s }

func newTestSetup(t *testing.T, api *fakeAPI, meetings *stubMeetings, secret string) (*transcriptionService, *fakeStore) {
	t.Helper()
	store := &fakeStore{objects: make(map[string][]byte)}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, ok := store.objects[strings.TrimPrefix(r.URL.Path, "/")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write(data)
	}))
	t.Cleanup(server.Close)
	store.baseURL = server.URL

	cfg := &config.Config{}
	cfg.Assembly.WebhookSecret = secret

	return newService(store, api, meetings, cfg, nil), store
}

func submit(t *testing.T, svc *transcriptionService) *Submission {
	t.Helper()
	sub, err := svc.SubmitRecording(context.Background(), "Standup", "", "standup.mp3",
		strings.NewReader("audio bytes"), 11, "audio/mpeg")
	if err != nil {
		t.Fatalf("SubmitRecording: %v", err)
	}
	return sub
}

func TestSubmitRecording(t *testing.T) {
	api := &fakeAPI{transcriptID: str("t-1")}
	svc, store := newTestSetup(t, api, &stubMeetings{}, "")

	sub := submit(t, svc)
	if sub.TranscriptID != "t-1" {
		t.Errorf("transcript ID = %q", sub.TranscriptID)
	}
	if len(store.objects) != 1 {
		t.Errorf("expected one stored recording, got %d", len(store.objects))
	}
	if _, ok := svc.pending["t-1"]; !ok {
		t.Error("submission not registered for webhook completion")
	}
}

func TestSubmitRecording_MissingTranscriptID(t *testing.T) {
	for _, id := range []*string{nil, str("")} {
		api := &fakeAPI{transcriptID: id}
		svc, _ := newTestSetup(t, api, &stubMeetings{}, "")

		sub, err := svc.SubmitRecording(context.Background(), "Standup", "", "standup.mp3",
			strings.NewReader("audio bytes"), 11, "audio/mpeg")
		if err == nil {
			t.Fatalf("id %v: expected submission error, got %+v", id, sub)
		}
		if len(svc.pending) != 0 {
			t.Errorf("id %v: nothing must be registered without a transcript ID", id)
		}
		if api.submissions != 1 {
			t.Errorf("id %v: a response without an ID must not be retried, got %d submissions", id, api.submissions)
		}
	}
}

func TestHandleWebhook_Completed(t *testing.T) {
	meetingID := uuid.New()
	meetings := &stubMeetings{result: &meeting.ProcessResult{Success: true, MeetingID: &meetingID}}
	api := &fakeAPI{transcriptID: str("t-1"), text: str("Priya: shipping today.")}
	svc, _ := newTestSetup(t, api, meetings, "")

	submit(t, svc)

	payload := []byte(`{"transcript_id": "t-1", "status": "completed"}`)
	if err := svc.HandleWebhook(context.Background(), payload, ""); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}
	if meetings.lastTranscript != "Priya: shipping today." {
		t.Errorf("transcript not fed to the pipeline, got %q", meetings.lastTranscript)
	}
	if len(svc.pending) != 0 {
		t.Error("completed job must leave the pending registry")
	}
}

func TestHandleWebhook_ExtractionFailure(t *testing.T) {
	meetings := &stubMeetings{result: &meeting.ProcessResult{Success: false, Error: "unparsable reply"}}
	api := &fakeAPI{transcriptID: str("t-1"), text: str("some transcript")}
	svc, _ := newTestSetup(t, api, meetings, "")

	submit(t, svc)

	err := svc.HandleWebhook(context.Background(), []byte(`{"transcript_id": "t-1", "status": "completed"}`), "")
	var appErr apperrors.AppError
	if !stdErrors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_EXTRACTION_FAILED {
		t.Errorf("got %v, want EXTRACTION_FAILED", err)
	}
}

func TestHandleWebhook_TranscriptFetchFailure(t *testing.T) {
	api := &fakeAPI{transcriptID: str("t-1"), getErr: stdErrors.New("503 from provider")}
	svc, _ := newTestSetup(t, api, &stubMeetings{}, "")

	submit(t, svc)

	err := svc.HandleWebhook(context.Background(), []byte(`{"transcript_id": "t-1", "status": "completed"}`), "")
	var appErr apperrors.AppError
	if !stdErrors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_AI_SERVICE_UNAVAILABLE {
		t.Errorf("got %v, want AI_SERVICE_UNAVAILABLE", err)
	}
}

func TestHandleWebhook_UnknownTranscript(t *testing.T) {
	svc, _ := newTestSetup(t, &fakeAPI{transcriptID: str("t-1")}, &stubMeetings{}, "")

	if err := svc.HandleWebhook(context.Background(), []byte(`{"transcript_id": "ghost", "status": "completed"}`), ""); err == nil {
		t.Error("webhook for an unknown transcript must fail")
	}
}

func TestHandleWebhook_SignatureGate(t *testing.T) {
	const secret = "webhook-secret"
	meetingID := uuid.New()
	meetings := &stubMeetings{result: &meeting.ProcessResult{Success: true, MeetingID: &meetingID}}
	api := &fakeAPI{transcriptID: str("t-1"), text: str("transcript text")}
	svc, _ := newTestSetup(t, api, meetings, secret)

	submit(t, svc)

	payload := []byte(`{"transcript_id": "t-1", "status": "completed"}`)

	if err := svc.HandleWebhook(context.Background(), payload, "deadbeef"); err == nil {
		t.Fatal("invalid signature must be rejected")
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	signature := hex.EncodeToString(mac.Sum(nil))
	if err := svc.HandleWebhook(context.Background(), payload, signature); err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}
}
