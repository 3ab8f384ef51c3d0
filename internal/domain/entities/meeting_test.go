package entities

import (
	"errors"
	"testing"

	"gorm.io/datatypes"
)

func TestMeetingDecisionsRoundTrip(t *testing.T) {
	m := NewMeeting("Planning", "transcript", nil)

	if err := m.SetDecisions([]string{"ship it", "defer the migration"}); err != nil {
		t.Fatalf("SetDecisions: %v", err)
	}

	decisions, err := m.DecodeDecisions()
	if err != nil {
		t.Fatalf("DecodeDecisions: %v", err)
	}
	if len(decisions) != 2 || decisions[0] != "ship it" {
		t.Errorf("decisions = %v", decisions)
	}
}

func TestMeetingDecisionsEmptyColumn(t *testing.T) {
	m := NewMeeting("Planning", "transcript", nil)

	decisions, err := m.DecodeDecisions()
	if err != nil {
		t.Fatalf("DecodeDecisions: %v", err)
	}
	if decisions == nil || len(decisions) != 0 {
		t.Errorf("empty column must decode to an empty list, got %v", decisions)
	}
}

func TestMeetingDecisionsCorrupt(t *testing.T) {
	m := NewMeeting("Planning", "transcript", nil)
	m.Decisions = datatypes.JSON([]byte("not json"))

	if _, err := m.DecodeDecisions(); !errors.Is(err, ErrCorruptRecord) {
		t.Errorf("got %v, want ErrCorruptRecord", err)
	}
}

func TestMeetingAgendaCoverageRoundTrip(t *testing.T) {
	m := NewMeeting("Planning", "transcript", nil)

	cov := &AgendaCoverage{
		Status:         AgendaStatusCovered,
		CoveredItems:   []CoveredItem{{Item: "Budget", Evidence: "discussed at length"}},
		UncoveredItems: []string{},
	}
	if err := m.SetAgendaCoverage(cov); err != nil {
		t.Fatalf("SetAgendaCoverage: %v", err)
	}

	decoded, err := m.DecodeAgendaCoverage()
	if err != nil {
		t.Fatalf("DecodeAgendaCoverage: %v", err)
	}
	if decoded == nil || decoded.Status != AgendaStatusCovered || len(decoded.CoveredItems) != 1 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestMeetingAgendaCoverageAbsent(t *testing.T) {
	m := NewMeeting("Planning", "transcript", nil)

	decoded, err := m.DecodeAgendaCoverage()
	if err != nil {
		t.Fatalf("DecodeAgendaCoverage: %v", err)
	}
	if decoded != nil {
		t.Errorf("absent coverage must decode to nil, got %+v", decoded)
	}
}

func TestNewActionItemDefaults(t *testing.T) {
	m := NewMeeting("Planning", "transcript", nil)
	item := NewActionItem(m.ID, "write the doc")

	if item.Status {
		t.Error("new action items must start incomplete")
	}
	if item.MeetingID != m.ID {
		t.Error("meeting ID not set")
	}
}
