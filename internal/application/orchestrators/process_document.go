package orchestrators

import (
	"context"
	"log/slog"

	commentstore "github.com/crazyman1830/jsonformatter/internal/adapters/storage/comment"
	"github.com/crazyman1830/jsonformatter/internal/domain/comment"
	"github.com/crazyman1830/jsonformatter/internal/domain/jsondoc"
)

// ProcessDocumentInput carries input for the combined pipeline.
type ProcessDocumentInput struct {
	RawText   string
	Options   jsondoc.FormatOptions
	SessionID string // optional: empty skips comment sync
}

// ProcessDocumentDeps holds dependencies for ProcessDocument.
type ProcessDocumentDeps struct {
	Comments commentstore.Store // optional: nil skips comment sync
	Cache    *FormatCache       // optional: nil disables memoization
}

// ProcessDocumentResult aggregates validation, formatting, and structure
// analysis of one document, plus the session's realigned comments when a
// session was supplied.
type ProcessDocumentResult struct {
	Validation jsondoc.ValidationResult
	Format     jsondoc.FormatResult
	Structure  jsondoc.StructureInfo
	Comments   []string
}

// ExecuteProcessDocument runs the full pipeline: validate, format, analyze,
// and realign the session's comments to the formatted line count.
// PRE: Options.Indent is within jsondoc.MinIndent..jsondoc.MaxIndent
// POST: on invalid input all three results carry the same diagnostic and no
// comment state changes; on success Comments has exactly Format.LineCount
// entries when a session and store are present
func ExecuteProcessDocument(ctx context.Context, input ProcessDocumentInput, deps ProcessDocumentDeps) (ProcessDocumentResult, error) {
	result := ProcessDocumentResult{
		Validation: jsondoc.Validate(input.RawText),
	}

	result.Format = ExecuteFormatDocument(FormatDocumentInput{
		RawText: input.RawText,
		Options: input.Options,
	}, FormatDocumentDeps{Cache: deps.Cache})

	result.Structure = jsondoc.Analyze(input.RawText)

	if !result.Format.Success || input.SessionID == "" || deps.Comments == nil {
		return result, nil
	}

	if err := comment.ValidateSessionID(input.SessionID); err != nil {
		return ProcessDocumentResult{}, err
	}

	set, err := deps.Comments.Load(ctx, input.SessionID)
	if err != nil {
		return ProcessDocumentResult{}, err
	}

	synced, err := comment.Synchronize(set.Lines, result.Format.LineCount)
	if err != nil {
		return ProcessDocumentResult{}, err
	}

	if err := deps.Comments.Save(ctx, comment.Set{SessionID: input.SessionID, Lines: synced}); err != nil {
		slog.Error("process_event", "event", "comment_sync_failed", "session_id", input.SessionID, "error", err)
		return ProcessDocumentResult{}, err
	}

	result.Comments = synced
	slog.Info("process_event", "event", "document_processed",
		"session_id", input.SessionID,
		"line_count", result.Format.LineCount,
		"type", result.Structure.TypeName,
	)
	return result, nil
}
