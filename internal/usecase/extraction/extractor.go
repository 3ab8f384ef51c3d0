package extraction

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// Backend is the generative-AI text-completion backend: prompt in, free
// text out.
type Backend interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Extractor turns a raw transcript into a structured extraction result by
// prompting the backend and recovering JSON from its reply.
type Extractor struct {
	backend Backend
	parser  *Parser
	logger  *zap.Logger
	cfg     config.ExtractionConfig
}

// NewExtractor constructs an Extractor
func NewExtractor(backend Backend, logger *zap.Logger, cfg config.ExtractionConfig) *Extractor {
	return &Extractor{
		backend: backend,
		parser:  NewParser(),
		logger:  logger,
		cfg:     cfg,
	}
}

// Extract runs the pipeline: prompt construction, one backend invocation
// (no retry), response parsing. The caller enforces transcript bounds
// before invocation. Elapsed wall-clock time is attached to the result on
// every path. A backend failure is returned as a failed result, not an
// error; a parse failure degrades to the fallback result carrying the raw
// reply.
func (e *Extractor) Extract(ctx context.Context, transcript, agenda, title string) *entities.ExtractionResult {
	start := time.Now()

	prompt := BuildExtractionPrompt(transcript, agenda, title)

	reply, err := e.backend.GenerateContent(ctx, prompt)
	if err != nil {
		if e.logger != nil {
			e.logger.Error("extraction backend invocation failed",
				zap.String("title", title),
				zap.Error(err),
			)
		}
		return &entities.ExtractionResult{
			Success:        false,
			Error:          err.Error(),
			ProcessingTime: time.Since(start).Seconds(),
		}
	}

	result := e.parser.Parse(reply)
	result.ProcessingTime = time.Since(start).Seconds()

	if e.logger != nil {
		if result.Success {
			e.logger.Info("extraction completed",
				zap.String("title", title),
				zap.Int("decisions", len(result.Decisions)),
				zap.Int("action_items", len(result.ActionItems)),
				zap.Float64("processing_time", result.ProcessingTime),
			)
		} else {
			e.logger.Warn("extraction reply was not parsable, raw response preserved",
				zap.String("title", title),
				zap.Int("raw_length", len(result.RawResponse)),
			)
		}
	}

	return result
}

// QuickSummarize produces a short immediate summary of a transcript. The
// excerpt sent to the backend is clamped to the configured truncation
// limit.
func (e *Extractor) QuickSummarize(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", entities.ErrEmptyTranscript
	}
	// bounds and the clamp count characters, and the clamp must not split
	// a rune into invalid UTF-8
	if utf8.RuneCountInString(transcript) > e.cfg.MaxTranscriptChars {
		return "", entities.ErrTranscriptTooLong
	}

	excerpt := transcript
	if runes := []rune(excerpt); len(runes) > e.cfg.QuickSummaryLimit {
		excerpt = string(runes[:e.cfg.QuickSummaryLimit]) + "..."
	}

	reply, err := e.backend.GenerateContent(ctx, BuildQuickSummaryPrompt(excerpt))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}
