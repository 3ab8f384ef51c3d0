package meeting

// ProcessMeetingRequest is the payload for processing a raw transcript
type ProcessMeetingRequest struct {
	Title      string `json:"title" validate:"required,max=255"`
	Transcript string `json:"transcript" validate:"required"`
	Agenda     string `json:"agenda"`
}

// UpdateMeetingRequest carries partial meeting updates. Nil fields are
// left untouched.
type UpdateMeetingRequest struct {
	Title     *string  `json:"title" validate:"omitempty,max=255"`
	Summary   *string  `json:"summary"`
	Decisions []string `json:"decisions"`
}

// QuickSummaryRequest is the payload for an immediate short summary
type QuickSummaryRequest struct {
	Transcript string `json:"transcript" validate:"required"`
}

// CreateActionItemRequest adds a manual action item to a meeting
type CreateActionItemRequest struct {
	MeetingID   string  `json:"meeting_id" validate:"required,uuid"`
	Description string  `json:"description" validate:"required"`
	Owner       *string `json:"owner" validate:"omitempty,max=255"`
	DueDate     *string `json:"due_date" validate:"omitempty,max=100"`
}

// UpdateActionItemRequest carries partial action item updates
type UpdateActionItemRequest struct {
	Description *string `json:"description"`
	Owner       *string `json:"owner" validate:"omitempty,max=255"`
	DueDate     *string `json:"due_date" validate:"omitempty,max=100"`
	Status      *bool   `json:"status"`
}

// SetStatusRequest toggles an action item's completion flag
type SetStatusRequest struct {
	Status *bool `json:"status" validate:"required"`
}
