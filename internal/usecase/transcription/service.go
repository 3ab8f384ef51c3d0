package transcription

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/pkg/config"

	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/meeting"
)

// Submission describes an accepted recording awaiting transcription
type Submission struct {
	TranscriptID string `json:"transcript_id"`
	ObjectName   string `json:"object_name"`
	Status       string `json:"status"`
}

// pendingJob carries the meeting metadata from submission to webhook
// completion
type pendingJob struct {
	Title      string
	Agenda     string
	ObjectName string
}

// recordingStore is the slice of storage.RecordingStore this service needs
type recordingStore interface {
	UploadRecording(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	RecordingURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// transcriptAPI is the slice of the AssemblyAI client this service needs
type transcriptAPI interface {
	Upload(ctx context.Context, reader io.Reader) (string, error)
	TranscribeFromURL(ctx context.Context, audioURL string, params *aai.TranscriptOptionalParams) (aai.Transcript, error)
	GetTranscript(ctx context.Context, id string) (aai.Transcript, error)
}

// assemblyAPI adapts the official SDK client to transcriptAPI
type assemblyAPI struct {
	client *aai.Client
}

func (a *assemblyAPI) Upload(ctx context.Context, reader io.Reader) (string, error) {
	return a.client.Upload(ctx, reader)
}

func (a *assemblyAPI) TranscribeFromURL(ctx context.Context, audioURL string, params *aai.TranscriptOptionalParams) (aai.Transcript, error) {
	return a.client.Transcripts.TranscribeFromURL(ctx, audioURL, params)
}

func (a *assemblyAPI) GetTranscript(ctx context.Context, id string) (aai.Transcript, error) {
	return a.client.Transcripts.Get(ctx, id)
}

// Service accepts meeting recordings, hands them to the transcription
// provider and, once the provider calls back, feeds the finished transcript
// through the meeting pipeline.
type Service interface {
	SubmitRecording(ctx context.Context, title, agenda, filename string, file io.Reader, size int64, contentType string) (*Submission, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type transcriptionService struct {
	store    recordingStore
	api      transcriptAPI
	meetings meeting.Service
	cfg      *config.Config
	logger   *zap.Logger

	// limit concurrent uploads to the provider
	uploadSemaphore chan struct{}

	mu      sync.Mutex
	pending map[string]pendingJob
}

// NewService constructs the transcription service
func NewService(
	store *storage.RecordingStore,
	meetings meeting.Service,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return newService(store, &assemblyAPI{client: aai.NewClient(cfg.Assembly.APIKey)}, meetings, cfg, logger)
}

func newService(store recordingStore, api transcriptAPI, meetings meeting.Service, cfg *config.Config, logger *zap.Logger) *transcriptionService {
	return &transcriptionService{
		store:           store,
		api:             api,
		meetings:        meetings,
		cfg:             cfg,
		logger:          logger,
		uploadSemaphore: make(chan struct{}, 2),
		pending:         make(map[string]pendingJob),
	}
}

// SubmitRecording stores the file, submits it for transcription with retry
// and registers the meeting metadata for webhook completion
func (s *transcriptionService) SubmitRecording(ctx context.Context, title, agenda, filename string, file io.Reader, size int64, contentType string) (*Submission, error) {
	objectName := fmt.Sprintf("recordings/%s%s", uuid.New().String(), filepath.Ext(filename))

	if err := s.store.UploadRecording(ctx, objectName, file, size, contentType); err != nil {
		return nil, err
	}

	recordingURL, err := s.store.RecordingURL(ctx, objectName, time.Hour)
	if err != nil {
		return nil, err
	}

	s.uploadSemaphore <- struct{}{}
	defer func() { <-s.uploadSemaphore }()

	var transcriptID string
	submitFn := func() error {
		cleanURL := strings.TrimSpace(recordingURL)

		resp, err := http.Get(cleanURL)
		if err != nil {
			return fmt.Errorf("failed to download recording: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("recording store returned status %d", resp.StatusCode)
		}

		uploadURL, err := s.api.Upload(ctx, resp.Body)
		if err != nil {
			return fmt.Errorf("failed to upload to AssemblyAI: %w", err)
		}

		webhookURL := s.cfg.Assembly.WebhookBaseURL
		params := &aai.TranscriptOptionalParams{
			SpeakerLabels: aai.Bool(true),
		}
		if webhookURL != "" {
			params.WebhookURL = &webhookURL
		}

		transcript, err := s.api.TranscribeFromURL(ctx, uploadURL, params)
		if err != nil {
			return err
		}

		// a submission without an ID can never be matched by the webhook,
		// and resubmitting would queue a duplicate transcription
		if transcript.ID == nil || *transcript.ID == "" {
			return backoff.Permanent(fmt.Errorf("provider accepted the submission but returned no transcript ID"))
		}
		transcriptID = *transcript.ID

		// register before returning: the webhook can arrive within seconds
		s.mu.Lock()
		s.pending[transcriptID] = pendingJob{Title: title, Agenda: agenda, ObjectName: objectName}
		s.mu.Unlock()

		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxElapsedTime = 30 * time.Second
	bo.MaxInterval = 10 * time.Second

	if err := backoff.Retry(submitFn, backoff.WithContext(bo, ctx)); err != nil {
		if s.logger != nil {
			s.logger.Error("failed to submit recording for transcription",
				zap.String("object_name", objectName),
				zap.Error(err),
			)
		}
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("recording submitted for transcription",
			zap.String("transcript_id", transcriptID),
			zap.String("object_name", objectName),
		)
	}

	return &Submission{
		TranscriptID: transcriptID,
		ObjectName:   objectName,
		Status:       "queued",
	}, nil
}

// HandleWebhook processes the provider's completion callback. When a
// transcript finished successfully its text runs through the meeting
// pipeline using the metadata captured at submission.
func (s *transcriptionService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if secret := s.cfg.Assembly.WebhookSecret; secret != "" {
		if !verifySignature(secret, payload, signature) {
			if s.logger != nil {
				s.logger.Warn("rejected webhook with invalid signature")
			}
			return fmt.Errorf("invalid webhook signature")
		}
	}

	var body struct {
		TranscriptID string `json:"transcript_id"`
		ID           string `json:"id"`
		Status       string `json:"status"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return fmt.Errorf("failed to parse webhook payload: %w", err)
	}

	transcriptID := body.TranscriptID
	if transcriptID == "" {
		transcriptID = body.ID
	}
	if transcriptID == "" {
		return fmt.Errorf("transcript ID missing in webhook payload")
	}

	s.mu.Lock()
	job, ok := s.pending[transcriptID]
	if ok {
		delete(s.pending, transcriptID)
	}
	s.mu.Unlock()

	if !ok {
		if s.logger != nil {
			s.logger.Warn("webhook for unknown transcript", zap.String("transcript_id", transcriptID))
		}
		return fmt.Errorf("unknown transcript: %s", transcriptID)
	}

	if body.Status != "completed" {
		if s.logger != nil {
			s.logger.Error("transcription did not complete",
				zap.String("transcript_id", transcriptID),
				zap.String("status", body.Status),
			)
		}
		return fmt.Errorf("transcription failed with status %q", body.Status)
	}

	transcript, err := s.api.GetTranscript(ctx, transcriptID)
	if err != nil {
		return apperrors.ErrAIServiceUnavailable("assemblyai")
	}
	if transcript.Text == nil || strings.TrimSpace(*transcript.Text) == "" {
		return fmt.Errorf("transcript %s has no text", transcriptID)
	}

	result, err := s.meetings.ProcessTranscript(ctx, job.Title, *transcript.Text, job.Agenda)
	if err != nil {
		return err
	}
	if !result.Success {
		return apperrors.ErrExtractionFailed(fmt.Errorf("transcript %s: %s", transcriptID, result.Error))
	}

	if s.logger != nil {
		s.logger.Info("transcribed recording processed",
			zap.String("transcript_id", transcriptID),
			zap.String("meeting_id", result.MeetingID.String()),
		)
	}
	return nil
}
