package comment

import (
	"context"

	domain "github.com/crazyman1830/jsonformatter/internal/domain/comment"
)

// Store persists per-session comment lines.
// Load on an unknown session returns an empty Set, not an error; Exists
// reports true only when the session holds at least one line.
type Store interface {
	Save(ctx context.Context, set domain.Set) error
	Load(ctx context.Context, sessionID string) (domain.Set, error)
	Clear(ctx context.Context, sessionID string) error
	Exists(ctx context.Context, sessionID string) (bool, error)
}
