package meeting

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/extraction"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// ProcessResult is the outcome of processing one transcript. When Success
// is false no rows were persisted and Error carries the reason.
type ProcessResult struct {
	Success        bool                       `json:"success"`
	MeetingID      *uuid.UUID                 `json:"meeting_id,omitempty"`
	Summary        string                     `json:"summary,omitempty"`
	Decisions      []string                   `json:"decisions,omitempty"`
	ActionItems    []entities.ActionItemDraft `json:"action_items,omitempty"`
	AgendaCoverage *entities.AgendaCoverage   `json:"agenda_coverage,omitempty"`
	ProcessingTime float64                    `json:"processing_time,omitempty"`
	Error          string                     `json:"error,omitempty"`
}

// MeetingDetails joins a meeting with its decoded jsonb fields and its
// action items into one response shape.
type MeetingDetails struct {
	Meeting        *entities.Meeting        `json:"meeting"`
	Decisions      []string                 `json:"decisions"`
	AgendaCoverage *entities.AgendaCoverage `json:"agenda_coverage,omitempty"`
	ActionItems    []*entities.ActionItem   `json:"action_items"`
}

// ActionItemStats aggregates action item counts across all meetings
type ActionItemStats struct {
	Total          int64   `json:"total_action_items"`
	Completed      int64   `json:"completed_action_items"`
	Pending        int64   `json:"pending_action_items"`
	CompletionRate float64 `json:"completion_rate"`
}

// AnalyticsSummary is the aggregate analytics view
type AnalyticsSummary struct {
	TotalMeetings     int64           `json:"total_meetings"`
	AvgActionItems    float64         `json:"avg_action_items_per_meeting"`
	ActionItemSummary ActionItemStats `json:"action_items"`
}

// Service orchestrates validation, the extraction pipeline and persistence
type Service interface {
	ProcessTranscript(ctx context.Context, title, transcript, agenda string) (*ProcessResult, error)
	GetMeeting(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
	GetMeetingWithActionItems(ctx context.Context, id uuid.UUID) (*MeetingDetails, error)
	ListMeetings(ctx context.Context, limit int) ([]*entities.Meeting, error)
	UpdateMeeting(ctx context.Context, id uuid.UUID, update repositories.MeetingUpdate) (*entities.Meeting, error)
	DeleteMeeting(ctx context.Context, id uuid.UUID) error

	CreateActionItem(ctx context.Context, meetingID uuid.UUID, description string, owner, dueDate *string) (*entities.ActionItem, error)
	ListActionItems(ctx context.Context) ([]*entities.ActionItem, error)
	ListMeetingActionItems(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error)
	UpdateActionItem(ctx context.Context, id uuid.UUID, update repositories.ActionItemUpdate) (*entities.ActionItem, error)
	SetActionItemStatus(ctx context.Context, id uuid.UUID, status bool) (*entities.ActionItem, error)
	DeleteActionItem(ctx context.Context, id uuid.UUID) error

	Analytics(ctx context.Context) (*AnalyticsSummary, error)
	QuickSummary(ctx context.Context, transcript string) (string, error)
}

type meetingService struct {
	meetingRepo    repositories.MeetingRepository
	actionItemRepo repositories.ActionItemRepository
	extractor      *extraction.Extractor
	summaryCache   cache.SummaryCache
	logger         *zap.Logger
	cfg            config.ExtractionConfig
}

// NewService constructs the meeting service. summaryCache may be nil, in
// which case quick summaries are never cached.
func NewService(
	meetingRepo repositories.MeetingRepository,
	actionItemRepo repositories.ActionItemRepository,
	extractor *extraction.Extractor,
	summaryCache cache.SummaryCache,
	logger *zap.Logger,
	cfg config.ExtractionConfig,
) Service {
	return &meetingService{
		meetingRepo:    meetingRepo,
		actionItemRepo: actionItemRepo,
		extractor:      extractor,
		summaryCache:   summaryCache,
		logger:         logger,
		cfg:            cfg,
	}
}

// ProcessTranscript validates the transcript, runs the extraction pipeline
// and, only on a successful extraction, persists the meeting with its
// action items in one transaction.
func (s *meetingService) ProcessTranscript(ctx context.Context, title, transcript, agenda string) (*ProcessResult, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, entities.ErrEmptyTranscript
	}
	// the bound is in characters, not bytes
	if utf8.RuneCountInString(transcript) > s.cfg.MaxTranscriptChars {
		return nil, entities.ErrTranscriptTooLong
	}

	result := s.extractor.Extract(ctx, transcript, agenda, title)
	if !result.Success {
		errMsg := result.Error
		if errMsg == "" {
			errMsg = "Processing failed"
		}
		return &ProcessResult{
			Success:        false,
			Error:          errMsg,
			ProcessingTime: result.ProcessingTime,
		}, nil
	}

	var agendaPtr *string
	if strings.TrimSpace(agenda) != "" {
		agendaPtr = &agenda
	}

	meeting := entities.NewMeeting(title, transcript, agendaPtr)
	meeting.Summary = &result.Summary
	if err := meeting.SetDecisions(result.Decisions); err != nil {
		return nil, err
	}
	if err := meeting.SetAgendaCoverage(result.AgendaCoverage); err != nil {
		return nil, err
	}

	items := make([]*entities.ActionItem, 0, len(result.ActionItems))
	for _, draft := range result.ActionItems {
		item := entities.NewActionItem(meeting.ID, draft.Description)
		item.Owner = draft.Owner
		item.DueDate = draft.DueDate
		items = append(items, item)
	}

	if err := s.meetingRepo.CreateWithActionItems(ctx, meeting, items); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("meeting processed and persisted",
			zap.String("meeting_id", meeting.ID.String()),
			zap.Int("action_items", len(items)),
			zap.Float64("processing_time", result.ProcessingTime),
		)
	}

	id := meeting.ID
	return &ProcessResult{
		Success:        true,
		MeetingID:      &id,
		Summary:        result.Summary,
		Decisions:      result.Decisions,
		ActionItems:    result.ActionItems,
		AgendaCoverage: result.AgendaCoverage,
		ProcessingTime: result.ProcessingTime,
	}, nil
}

func (s *meetingService) GetMeeting(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	return s.meetingRepo.FindByID(ctx, id)
}

func (s *meetingService) GetMeetingWithActionItems(ctx context.Context, id uuid.UUID) (*MeetingDetails, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	decisions, err := meeting.DecodeDecisions()
	if err != nil {
		return nil, err
	}
	coverage, err := meeting.DecodeAgendaCoverage()
	if err != nil {
		return nil, err
	}

	items, err := s.actionItemRepo.ListByMeeting(ctx, id)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*entities.ActionItem{}
	}

	return &MeetingDetails{
		Meeting:        meeting,
		Decisions:      decisions,
		AgendaCoverage: coverage,
		ActionItems:    items,
	}, nil
}

func (s *meetingService) ListMeetings(ctx context.Context, limit int) ([]*entities.Meeting, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.meetingRepo.List(ctx, limit)
}

func (s *meetingService) UpdateMeeting(ctx context.Context, id uuid.UUID, update repositories.MeetingUpdate) (*entities.Meeting, error) {
	return s.meetingRepo.Update(ctx, id, update)
}

func (s *meetingService) DeleteMeeting(ctx context.Context, id uuid.UUID) error {
	return s.meetingRepo.Delete(ctx, id)
}

// CreateActionItem verifies the owning meeting exists before inserting
func (s *meetingService) CreateActionItem(ctx context.Context, meetingID uuid.UUID, description string, owner, dueDate *string) (*entities.ActionItem, error) {
	if _, err := s.meetingRepo.FindByID(ctx, meetingID); err != nil {
		return nil, err
	}

	item := entities.NewActionItem(meetingID, description)
	item.Owner = owner
	item.DueDate = dueDate
	if err := s.actionItemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *meetingService) ListActionItems(ctx context.Context) ([]*entities.ActionItem, error) {
	return s.actionItemRepo.ListAll(ctx)
}

func (s *meetingService) ListMeetingActionItems(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error) {
	if _, err := s.meetingRepo.FindByID(ctx, meetingID); err != nil {
		return nil, err
	}
	return s.actionItemRepo.ListByMeeting(ctx, meetingID)
}

func (s *meetingService) UpdateActionItem(ctx context.Context, id uuid.UUID, update repositories.ActionItemUpdate) (*entities.ActionItem, error) {
	return s.actionItemRepo.Update(ctx, id, update)
}

func (s *meetingService) SetActionItemStatus(ctx context.Context, id uuid.UUID, status bool) (*entities.ActionItem, error) {
	return s.actionItemRepo.SetStatus(ctx, id, status)
}

func (s *meetingService) DeleteActionItem(ctx context.Context, id uuid.UUID) error {
	return s.actionItemRepo.Delete(ctx, id)
}

// Analytics reports aggregate action item and meeting counts. Both rates
// are 0 when their denominator is 0.
func (s *meetingService) Analytics(ctx context.Context) (*AnalyticsSummary, error) {
	total, completed, err := s.actionItemRepo.Counts(ctx)
	if err != nil {
		return nil, err
	}

	meetings, err := s.meetingRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	var completionRate float64
	if total > 0 {
		completionRate = float64(completed) / float64(total) * 100
	}

	var avgItems float64
	if meetings > 0 {
		avgItems = math.Round(float64(total)/float64(meetings)*10) / 10
	}

	return &AnalyticsSummary{
		TotalMeetings:  meetings,
		AvgActionItems: avgItems,
		ActionItemSummary: ActionItemStats{
			Total:          total,
			Completed:      completed,
			Pending:        total - completed,
			CompletionRate: completionRate,
		},
	}, nil
}

// QuickSummary returns a short summary for immediate feedback, served from
// the cache when the same transcript was summarized recently.
func (s *meetingService) QuickSummary(ctx context.Context, transcript string) (string, error) {
	key := quickSummaryKey(transcript)
	if s.summaryCache != nil {
		if cached, ok := s.summaryCache.Get(ctx, key); ok {
			return cached, nil
		}
	}

	summary, err := s.extractor.QuickSummarize(ctx, transcript)
	if err != nil {
		return "", err
	}

	if s.summaryCache != nil {
		ttl := time.Duration(s.cfg.QuickSummaryCacheTTL) * time.Second
		s.summaryCache.Set(ctx, key, summary, ttl)
	}
	return summary, nil
}

func quickSummaryKey(transcript string) string {
	sum := sha256.Sum256([]byte(transcript))
	return "quick_summary:" + hex.EncodeToString(sum[:])
}
