package orchestrators

import (
	"context"
	"log/slog"

	commentstore "github.com/crazyman1830/jsonformatter/internal/adapters/storage/comment"
	"github.com/crazyman1830/jsonformatter/internal/domain/comment"
)

// CommentDeps holds the store shared by the comment orchestrators.
type CommentDeps struct {
	Comments commentstore.Store
}

// SaveCommentsInput carries input for the save orchestrator. When Text is
// set it is split into lines first; otherwise Lines is stored as given.
type SaveCommentsInput struct {
	SessionID string
	Text      string
	Lines     []string
}

// ExecuteSaveComments stores a comment block for a session.
// PRE: SessionID passes comment.ValidateSessionID
// POST: the session holds exactly the given lines, last writer wins
func ExecuteSaveComments(ctx context.Context, input SaveCommentsInput, deps CommentDeps) error {
	if err := comment.ValidateSessionID(input.SessionID); err != nil {
		return err
	}

	lines := input.Lines
	if input.Text != "" {
		lines = comment.SplitText(input.Text)
	}

	set := comment.Set{SessionID: input.SessionID, Lines: lines}
	if err := deps.Comments.Save(ctx, set); err != nil {
		slog.Error("comment_event", "event", "comments_save_failed", "session_id", input.SessionID, "error", err)
		return err
	}

	slog.Info("comment_event", "event", "comments_saved", "session_id", input.SessionID, "line_count", len(lines))
	return nil
}

// LoadCommentsResult carries a session's stored comments.
type LoadCommentsResult struct {
	Lines  []string
	Text   string
	Exists bool
}

// ExecuteLoadComments retrieves a session's comment block.
// PRE: sessionID passes comment.ValidateSessionID
// POST: unknown sessions yield an empty result, not an error
func ExecuteLoadComments(ctx context.Context, sessionID string, deps CommentDeps) (LoadCommentsResult, error) {
	if err := comment.ValidateSessionID(sessionID); err != nil {
		return LoadCommentsResult{}, err
	}

	set, err := deps.Comments.Load(ctx, sessionID)
	if err != nil {
		return LoadCommentsResult{}, err
	}

	lines := set.Lines
	if lines == nil {
		lines = []string{}
	}
	return LoadCommentsResult{
		Lines:  lines,
		Text:   comment.JoinLines(lines),
		Exists: len(lines) > 0,
	}, nil
}

// ExecuteClearComments removes a session's comment block.
// PRE: sessionID passes comment.ValidateSessionID
// POST: the session holds no lines; clearing an unknown session is a no-op
func ExecuteClearComments(ctx context.Context, sessionID string, deps CommentDeps) error {
	if err := comment.ValidateSessionID(sessionID); err != nil {
		return err
	}

	if err := deps.Comments.Clear(ctx, sessionID); err != nil {
		slog.Error("comment_event", "event", "comments_clear_failed", "session_id", sessionID, "error", err)
		return err
	}

	slog.Info("comment_event", "event", "comments_cleared", "session_id", sessionID)
	return nil
}

// SyncCommentsInput carries input for the sync orchestrator.
type SyncCommentsInput struct {
	SessionID   string
	TargetLines int
}

// ExecuteSyncComments realigns a session's comments to a new document length
// and persists the result.
// PRE: TargetLines >= 0
// POST: the stored block has exactly TargetLines lines; the synced lines are
// returned
func ExecuteSyncComments(ctx context.Context, input SyncCommentsInput, deps CommentDeps) ([]string, error) {
	if err := comment.ValidateSessionID(input.SessionID); err != nil {
		return nil, err
	}
	if input.TargetLines < 0 {
		return nil, comment.ErrNegativeTarget
	}

	set, err := deps.Comments.Load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	synced, err := comment.Synchronize(set.Lines, input.TargetLines)
	if err != nil {
		return nil, err
	}

	if err := deps.Comments.Save(ctx, comment.Set{SessionID: input.SessionID, Lines: synced}); err != nil {
		slog.Error("comment_event", "event", "comments_sync_failed", "session_id", input.SessionID, "error", err)
		return nil, err
	}

	slog.Info("comment_event", "event", "comments_synced", "session_id", input.SessionID, "line_count", input.TargetLines)
	return synced, nil
}
