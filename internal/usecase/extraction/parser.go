package extraction

import (
	"encoding/json"
	"strings"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// FallbackSummary is the fixed diagnostic summary used when the model reply
// cannot be parsed into structured form.
const FallbackSummary = "Error: Could not parse AI response into structured format"

// Parser recovers structured extraction results from free-text model replies
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// payload mirrors the JSON shape the prompt asks the model for. Pointers
// distinguish absent fields from empty ones so the backfill rules can apply.
type payload struct {
	Summary        *string                    `json:"summary"`
	Decisions      []string                   `json:"decisions"`
	ActionItems    []entities.ActionItemDraft `json:"action_items"`
	AgendaCoverage *entities.AgendaCoverage   `json:"agenda_coverage"`
	Participants   []string                   `json:"participants"`
	KeyTopics      []string                   `json:"key_topics"`
}

// Parse extracts a structured result from the raw model reply. A reply with
// no recoverable JSON object degrades to the fallback result carrying the
// raw text; Parse never returns an error. Missing required fields are
// backfilled (empty string / empty list) rather than failing the run, and a
// missing agenda_coverage is synthesized as no_agenda.
func (p *Parser) Parse(reply string) *entities.ExtractionResult {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return p.fallback(reply)
	}

	var data payload
	if err := json.Unmarshal([]byte(reply[start:end+1]), &data); err != nil {
		return p.fallback(reply)
	}

	result := &entities.ExtractionResult{Success: true}

	if data.Summary != nil {
		result.Summary = *data.Summary
	}
	result.Decisions = emptyIfNil(data.Decisions)
	result.Participants = emptyIfNil(data.Participants)
	result.KeyTopics = emptyIfNil(data.KeyTopics)

	result.ActionItems = data.ActionItems
	if result.ActionItems == nil {
		result.ActionItems = []entities.ActionItemDraft{}
	}

	result.AgendaCoverage = data.AgendaCoverage
	if result.AgendaCoverage == nil {
		result.AgendaCoverage = entities.NoAgendaCoverage()
	} else {
		if result.AgendaCoverage.CoveredItems == nil {
			result.AgendaCoverage.CoveredItems = []entities.CoveredItem{}
		}
		if result.AgendaCoverage.UncoveredItems == nil {
			result.AgendaCoverage.UncoveredItems = []string{}
		}
	}

	return result
}

// fallback builds the degraded result for an unparsable reply. The raw text
// is preserved verbatim: it is the only audit trail when extraction fails.
func (p *Parser) fallback(reply string) *entities.ExtractionResult {
	return &entities.ExtractionResult{
		Success:     false,
		Summary:     FallbackSummary,
		Decisions:   []string{},
		ActionItems: []entities.ActionItemDraft{},
		AgendaCoverage: &entities.AgendaCoverage{
			Status:         entities.AgendaStatusError,
			CoveredItems:   []entities.CoveredItem{},
			UncoveredItems: []string{},
		},
		Participants: []string{},
		KeyTopics:    []string{},
		RawResponse:  reply,
		Error:        "failed to parse structured response",
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
