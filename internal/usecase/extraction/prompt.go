package extraction

import (
	"fmt"
	"strings"
)

const agendaSectionTemplate = `
**MEETING AGENDA:**
%s

**AGENDA ANALYSIS REQUIRED:**
- Identify which agenda items were discussed in the transcript
- Mark items as "covered" or "not covered"
- Provide specific evidence from transcript for covered items
`

const extractionPromptTemplate = `You are a professional meeting minutes specialist. Analyze the following meeting transcript and extract structured information.

**MEETING TITLE:** %s

**MEETING TRANSCRIPT:**
%s
%s
**REQUIRED OUTPUT FORMAT (JSON):**
Please provide your analysis in the following JSON structure:

{
    "summary": "3-7 sentence summary of the meeting highlighting key topics and outcomes",
    "decisions": [
        "List of specific decisions made during the meeting (if any)"
    ],
    "action_items": [
        {
            "description": "Clear description of the action item",
            "owner": "Person responsible (extract from transcript if mentioned, otherwise null)",
            "due_date": "Due date or timeframe mentioned (extract if present, otherwise null)"
        }
    ],
    "agenda_coverage": {
        "status": "covered|not_covered|no_agenda",
        "covered_items": [
            {
                "item": "agenda item text",
                "evidence": "specific quote or reference from transcript"
            }
        ],
        "uncovered_items": [
            "agenda items not discussed"
        ]
    },
    "participants": [
        "Names of people who spoke (extract from transcript)"
    ],
    "key_topics": [
        "Main topics discussed"
    ]
}

**EXTRACTION GUIDELINES:**
1. **Summary**: Focus on concrete details, decisions, and outcomes
2. **Decisions**: Only include explicit decisions, not discussions
3. **Action Items**: Extract specific tasks with clear ownership when possible
4. **Participants**: Extract names mentioned as speakers in the transcript
5. **Agenda Coverage**: If no agenda provided, set status to "no_agenda"
6. **Be Specific**: Reference concrete details from the transcript, not generic statements

Ensure the output is valid JSON format.`

const quickSummaryPromptTemplate = `Provide a concise 2-3 sentence summary of this meeting transcript:

%s

Focus on the main topics and any key decisions or outcomes.`

// BuildExtractionPrompt builds the structured-extraction instruction. The
// agenda section is included only when an agenda was supplied; the model is
// told to use status "no_agenda" otherwise.
func BuildExtractionPrompt(transcript, agenda, title string) string {
	agendaSection := ""
	if strings.TrimSpace(agenda) != "" {
		agendaSection = fmt.Sprintf(agendaSectionTemplate, agenda)
	}
	return fmt.Sprintf(extractionPromptTemplate, title, transcript, agendaSection)
}

// BuildQuickSummaryPrompt builds the short-summary instruction from a
// transcript excerpt already clamped by the caller.
func BuildQuickSummaryPrompt(excerpt string) string {
	return fmt.Sprintf(quickSummaryPromptTemplate, excerpt)
}
