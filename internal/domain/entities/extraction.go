package entities

// Agenda coverage status values
const (
	AgendaStatusCovered    = "covered"
	AgendaStatusNotCovered = "not_covered"
	AgendaStatusNoAgenda   = "no_agenda"
	AgendaStatusError      = "error"
)

// ActionItemDraft is an unvalidated action item as extracted by the model
type ActionItemDraft struct {
	Description string  `json:"description"`
	Owner       *string `json:"owner,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

// CoveredItem is an agenda item the model found discussed, with evidence
type CoveredItem struct {
	Item     string `json:"item"`
	Evidence string `json:"evidence"`
}

// AgendaCoverage classifies each planned agenda item as discussed or not
type AgendaCoverage struct {
	Status         string        `json:"status"`
	CoveredItems   []CoveredItem `json:"covered_items"`
	UncoveredItems []string      `json:"uncovered_items"`
}

// NoAgendaCoverage returns the coverage synthesized when no agenda was supplied
func NoAgendaCoverage() *AgendaCoverage {
	return &AgendaCoverage{
		Status:         AgendaStatusNoAgenda,
		CoveredItems:   []CoveredItem{},
		UncoveredItems: []string{},
	}
}

// ExtractionResult is the transient outcome of one extraction run. When
// Success is false the structured fields hold their fallback values and
// RawResponse preserves the model reply verbatim for operator inspection.
type ExtractionResult struct {
	Success        bool              `json:"success"`
	Summary        string            `json:"summary"`
	Decisions      []string          `json:"decisions"`
	ActionItems    []ActionItemDraft `json:"action_items"`
	AgendaCoverage *AgendaCoverage   `json:"agenda_coverage"`
	Participants   []string          `json:"participants"`
	KeyTopics      []string          `json:"key_topics"`
	ProcessingTime float64           `json:"processing_time"`
	RawResponse    string            `json:"raw_response,omitempty"`
	Error          string            `json:"error,omitempty"`
}
