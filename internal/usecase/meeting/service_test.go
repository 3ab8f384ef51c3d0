package meeting

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/extraction"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

type fakeMeetingRepo struct {
	mu       sync.Mutex
	meetings map[uuid.UUID]*entities.Meeting
	items    *fakeActionItemRepo
}

func newFakeMeetingRepo(items *fakeActionItemRepo) *fakeMeetingRepo {
	return &fakeMeetingRepo{meetings: make(map[uuid.UUID]*entities.Meeting), items: items}
}

func (r *fakeMeetingRepo) CreateWithActionItems(_ context.Context, meeting *entities.Meeting, items []*entities.ActionItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if meeting.ID == uuid.Nil {
		meeting.ID = uuid.New()
	}
	r.meetings[meeting.ID] = meeting
	for _, item := range items {
		item.MeetingID = meeting.ID
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		r.items.store[item.ID] = item
	}
	return nil
}

func (r *fakeMeetingRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	meeting, ok := r.meetings[id]
	if !ok {
		return nil, entities.ErrMeetingNotFound
	}
	return meeting, nil
}

func (r *fakeMeetingRepo) List(_ context.Context, limit int) ([]*entities.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entities.Meeting, 0, len(r.meetings))
	for _, m := range r.meetings {
		if len(out) == limit {
			break
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMeetingRepo) Update(_ context.Context, id uuid.UUID, update repositories.MeetingUpdate) (*entities.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	meeting, ok := r.meetings[id]
	if !ok {
		return nil, entities.ErrMeetingNotFound
	}
	if update.Title != nil {
		meeting.Title = *update.Title
	}
	if update.Summary != nil {
		meeting.Summary = update.Summary
	}
	if update.Decisions != nil {
		if err := meeting.SetDecisions(update.Decisions); err != nil {
			return nil, err
		}
	}
	if update.AgendaCoverage != nil {
		if err := meeting.SetAgendaCoverage(update.AgendaCoverage); err != nil {
			return nil, err
		}
	}
	return meeting, nil
}

func (r *fakeMeetingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.meetings[id]; !ok {
		return entities.ErrMeetingNotFound
	}
	delete(r.meetings, id)
	// mirror the ON DELETE CASCADE constraint
	for itemID, item := range r.items.store {
		if item.MeetingID == id {
			delete(r.items.store, itemID)
		}
	}
	return nil
}

func (r *fakeMeetingRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.meetings)), nil
}

type fakeActionItemRepo struct {
	store map[uuid.UUID]*entities.ActionItem
}

func newFakeActionItemRepo() *fakeActionItemRepo {
	return &fakeActionItemRepo{store: make(map[uuid.UUID]*entities.ActionItem)}
}

func (r *fakeActionItemRepo) Create(_ context.Context, item *entities.ActionItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.store[item.ID] = item
	return nil
}

func (r *fakeActionItemRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.ActionItem, error) {
	item, ok := r.store[id]
	if !ok {
		return nil, entities.ErrActionItemNotFound
	}
	return item, nil
}

func (r *fakeActionItemRepo) ListByMeeting(_ context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error) {
	var out []*entities.ActionItem
	for _, item := range r.store {
		if item.MeetingID == meetingID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeActionItemRepo) ListAll(_ context.Context) ([]*entities.ActionItem, error) {
	out := make([]*entities.ActionItem, 0, len(r.store))
	for _, item := range r.store {
		out = append(out, item)
	}
	return out, nil
}

func (r *fakeActionItemRepo) Update(_ context.Context, id uuid.UUID, update repositories.ActionItemUpdate) (*entities.ActionItem, error) {
	item, ok := r.store[id]
	if !ok {
		return nil, entities.ErrActionItemNotFound
	}
	if update.Description != nil {
		item.Description = *update.Description
	}
	if update.Owner != nil {
		item.Owner = update.Owner
	}
	if update.DueDate != nil {
		item.DueDate = update.DueDate
	}
	if update.Status != nil {
		item.Status = *update.Status
	}
	return item, nil
}

func (r *fakeActionItemRepo) SetStatus(ctx context.Context, id uuid.UUID, status bool) (*entities.ActionItem, error) {
	return r.Update(ctx, id, repositories.ActionItemUpdate{Status: &status})
}

func (r *fakeActionItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store[id]; !ok {
		return entities.ErrActionItemNotFound
	}
	delete(r.store, id)
	return nil
}

func (r *fakeActionItemRepo) Counts(_ context.Context) (int64, int64, error) {
	var total, completed int64
	for _, item := range r.store {
		total++
		if item.Status {
			completed++
		}
	}
	return total, completed, nil
}

type stubBackend struct {
	reply string
	err   error
}

func (b *stubBackend) GenerateContent(context.Context, string) (string, error) {
	return b.reply, b.err
}

type fakeCache struct {
	data map[string]string
	sets int
}

func newFakeCache() *fakeCache { return &fakeCache{data: make(map[string]string)} }

func (c *fakeCache) Get(_ context.Context, key string) (string, bool) {
	v, ok := c.data[key]
	return v, ok
}

func (c *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) {
	c.data[key] = value
	c.sets++
}

func testConfig() config.ExtractionConfig {
	return config.ExtractionConfig{
		MaxTranscriptChars:   20000,
		QuickSummaryLimit:    2000,
		QuickSummaryCacheTTL: 3600,
	}
}

func newTestService(backend extraction.Backend) (Service, *fakeMeetingRepo, *fakeActionItemRepo, *fakeCache) {
	items := newFakeActionItemRepo()
	meetings := newFakeMeetingRepo(items)
	cache := newFakeCache()
	extractor := extraction.NewExtractor(backend, nil, testConfig())
	svc := NewService(meetings, items, extractor, cache, nil, testConfig())
	return svc, meetings, items, cache
}

const standupReply = `{
  "summary": "Daily standup covering the login bug fix and the Q3 roadmap review.",
  "decisions": ["Adopt the new retry policy for the payment worker"],
  "action_items": [
    {"description": "Fix the login redirect bug", "owner": "Priya", "due_date": "Friday"},
    {"description": "Draft the Q3 roadmap doc", "owner": "Marcus", "due_date": null}
  ],
  "agenda_coverage": {
    "status": "covered",
    "covered_items": [{"item": "Login bug", "evidence": "Priya walked through the redirect fix"}],
    "uncovered_items": []
  },
  "participants": ["Priya", "Marcus", "Dana"],
  "key_topics": ["login bug", "Q3 roadmap"]
}`

func TestProcessTranscript_PersistsMeetingAndActionItems(t *testing.T) {
	svc, meetings, items, _ := newTestService(&stubBackend{reply: standupReply})

	result, err := svc.ProcessTranscript(context.Background(), "Daily Standup",
		"Priya: the login redirect fix is up for review. Marcus: I'll start the Q3 roadmap doc.",
		"Login bug")
	if err != nil {
		t.Fatalf("ProcessTranscript returned error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if result.MeetingID == nil {
		t.Fatal("expected a meeting ID on success")
	}
	if len(result.Decisions) != 1 || len(result.ActionItems) != 2 {
		t.Fatalf("unexpected extraction payload: %d decisions, %d items", len(result.Decisions), len(result.ActionItems))
	}

	meeting, err := meetings.FindByID(context.Background(), *result.MeetingID)
	if err != nil {
		t.Fatalf("persisted meeting not found: %v", err)
	}
	if meeting.Summary == nil || !strings.Contains(*meeting.Summary, "standup") {
		t.Errorf("summary not persisted: %v", meeting.Summary)
	}
	decisions, err := meeting.DecodeDecisions()
	if err != nil {
		t.Fatalf("DecodeDecisions: %v", err)
	}
	if len(decisions) != 1 {
		t.Errorf("expected 1 persisted decision, got %d", len(decisions))
	}

	stored, _ := items.ListByMeeting(context.Background(), *result.MeetingID)
	if len(stored) != 2 {
		t.Fatalf("expected 2 persisted action items, got %d", len(stored))
	}
	for _, item := range stored {
		if item.Status {
			t.Error("new action items must start incomplete")
		}
	}
}

func TestProcessTranscript_NoPersistOnExtractionFailure(t *testing.T) {
	svc, meetings, items, _ := newTestService(&stubBackend{err: errors.New("backend down")})

	result, err := svc.ProcessTranscript(context.Background(), "Weekly Sync", "some transcript", "")
	if err != nil {
		t.Fatalf("ProcessTranscript returned error: %v", err)
	}
	if result.Success {
		t.Fatal("expected failure result")
	}
	if result.Error == "" {
		t.Error("failure result must carry an error message")
	}
	if result.MeetingID != nil {
		t.Error("failed processing must not report a meeting ID")
	}

	if n, _ := meetings.Count(context.Background()); n != 0 {
		t.Errorf("expected no persisted meetings, got %d", n)
	}
	if total, _, _ := items.Counts(context.Background()); total != 0 {
		t.Errorf("expected no persisted action items, got %d", total)
	}
}

func TestProcessTranscript_ValidatesTranscript(t *testing.T) {
	svc, _, _, _ := newTestService(&stubBackend{reply: standupReply})

	if _, err := svc.ProcessTranscript(context.Background(), "Empty", "   \n  ", ""); !errors.Is(err, entities.ErrEmptyTranscript) {
		t.Errorf("blank transcript: got %v, want ErrEmptyTranscript", err)
	}

	long := strings.Repeat("a", 20001)
	if _, err := svc.ProcessTranscript(context.Background(), "Long", long, ""); !errors.Is(err, entities.ErrTranscriptTooLong) {
		t.Errorf("oversized transcript: got %v, want ErrTranscriptTooLong", err)
	}
}

func TestProcessTranscript_BoundCountsCharactersNotBytes(t *testing.T) {
	svc, _, _, _ := newTestService(&stubBackend{reply: standupReply})

	// 15,000 characters but 45,000 bytes: within the 20,000-character bound
	multibyte := strings.Repeat("日", 15000)
	result, err := svc.ProcessTranscript(context.Background(), "All Hands", multibyte, "")
	if err != nil {
		t.Fatalf("multibyte transcript under the bound rejected: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}

	// 20,001 characters is over the bound regardless of encoding
	if _, err := svc.ProcessTranscript(context.Background(), "Too Long", strings.Repeat("日", 20001), ""); !errors.Is(err, entities.ErrTranscriptTooLong) {
		t.Errorf("oversized multibyte transcript: got %v, want ErrTranscriptTooLong", err)
	}
}

func TestDeleteMeeting_CascadesToActionItems(t *testing.T) {
	svc, _, items, _ := newTestService(&stubBackend{reply: standupReply})

	result, err := svc.ProcessTranscript(context.Background(), "Standup", "Priya: shipping today.", "")
	if err != nil || !result.Success {
		t.Fatalf("setup failed: %v / %+v", err, result)
	}

	if err := svc.DeleteMeeting(context.Background(), *result.MeetingID); err != nil {
		t.Fatalf("DeleteMeeting: %v", err)
	}

	if total, _, _ := items.Counts(context.Background()); total != 0 {
		t.Errorf("expected cascade to remove action items, got %d remaining", total)
	}

	if err := svc.DeleteMeeting(context.Background(), *result.MeetingID); !errors.Is(err, entities.ErrMeetingNotFound) {
		t.Errorf("double delete: got %v, want ErrMeetingNotFound", err)
	}
}

func TestAnalytics(t *testing.T) {
	svc, meetings, items, _ := newTestService(&stubBackend{reply: standupReply})

	ctx := context.Background()

	// empty store reports zero rates, not NaN
	summary, err := svc.Analytics(ctx)
	if err != nil {
		t.Fatalf("Analytics: %v", err)
	}
	if summary.ActionItemSummary.CompletionRate != 0 || summary.AvgActionItems != 0 {
		t.Errorf("empty store must report zero rates, got %+v", summary)
	}

	for i := 0; i < 4; i++ {
		m := entities.NewMeeting("m", "t", nil)
		if err := meetings.CreateWithActionItems(ctx, m, nil); err != nil {
			t.Fatal(err)
		}
	}
	meetingIDs := make([]uuid.UUID, 0, len(meetings.meetings))
	for id := range meetings.meetings {
		meetingIDs = append(meetingIDs, id)
	}
	for i := 0; i < 10; i++ {
		item := entities.NewActionItem(meetingIDs[0], "task")
		item.Status = i < 3
		if err := items.Create(ctx, item); err != nil {
			t.Fatal(err)
		}
	}

	summary, err = svc.Analytics(ctx)
	if err != nil {
		t.Fatalf("Analytics: %v", err)
	}
	if summary.TotalMeetings != 4 {
		t.Errorf("total meetings = %d, want 4", summary.TotalMeetings)
	}
	if summary.ActionItemSummary.Total != 10 || summary.ActionItemSummary.Completed != 3 {
		t.Errorf("counts = %+v", summary.ActionItemSummary)
	}
	if summary.ActionItemSummary.CompletionRate != 30.0 {
		t.Errorf("completion rate = %v, want 30.0", summary.ActionItemSummary.CompletionRate)
	}
	if summary.ActionItemSummary.Pending != 7 {
		t.Errorf("pending = %d, want 7", summary.ActionItemSummary.Pending)
	}
	if summary.AvgActionItems != 2.5 {
		t.Errorf("avg action items = %v, want 2.5", summary.AvgActionItems)
	}
}

func TestQuickSummary_UsesCache(t *testing.T) {
	backend := &stubBackend{reply: "A short recap of the meeting."}
	svc, _, _, cache := newTestService(backend)

	ctx := context.Background()
	first, err := svc.QuickSummary(ctx, "Priya: shipping the fix today.")
	if err != nil {
		t.Fatalf("QuickSummary: %v", err)
	}
	if first != "A short recap of the meeting." {
		t.Errorf("summary = %q", first)
	}
	if cache.sets != 1 {
		t.Fatalf("expected one cache write, got %d", cache.sets)
	}

	// second call with the same transcript must hit the cache
	backend.reply = "different reply"
	second, err := svc.QuickSummary(ctx, "Priya: shipping the fix today.")
	if err != nil {
		t.Fatalf("QuickSummary (cached): %v", err)
	}
	if second != first {
		t.Errorf("cached summary = %q, want %q", second, first)
	}
	if cache.sets != 1 {
		t.Errorf("cache hit must not write again, got %d sets", cache.sets)
	}
}

func TestCreateActionItem_RequiresMeeting(t *testing.T) {
	svc, _, _, _ := newTestService(&stubBackend{reply: standupReply})

	_, err := svc.CreateActionItem(context.Background(), uuid.New(), "orphan task", nil, nil)
	if !errors.Is(err, entities.ErrMeetingNotFound) {
		t.Errorf("got %v, want ErrMeetingNotFound", err)
	}
}

func TestSetActionItemStatus(t *testing.T) {
	svc, _, _, _ := newTestService(&stubBackend{reply: standupReply})
	ctx := context.Background()

	result, err := svc.ProcessTranscript(ctx, "Standup", "Priya: shipping today.", "")
	if err != nil || !result.Success {
		t.Fatalf("setup failed: %v", err)
	}

	stored, _ := svc.ListMeetingActionItems(ctx, *result.MeetingID)
	if len(stored) == 0 {
		t.Fatal("expected persisted action items")
	}

	updated, err := svc.SetActionItemStatus(ctx, stored[0].ID, true)
	if err != nil {
		t.Fatalf("SetActionItemStatus: %v", err)
	}
	if !updated.Status {
		t.Error("status not updated")
	}

	if _, err := svc.SetActionItemStatus(ctx, uuid.New(), true); !errors.Is(err, entities.ErrActionItemNotFound) {
		t.Errorf("unknown id: got %v, want ErrActionItemNotFound", err)
	}
}
