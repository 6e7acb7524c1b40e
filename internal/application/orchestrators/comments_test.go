package orchestrators

import (
	"context"
	"errors"
	"reflect"
	"testing"

	commentstore "github.com/crazyman1830/jsonformatter/internal/adapters/storage/comment"
	"github.com/crazyman1830/jsonformatter/internal/domain/comment"
)

// failingCommentStore implements commentstore.Store and fails every call.
type failingCommentStore struct{}

var errStoreDown = errors.New("store down")

func (failingCommentStore) Save(context.Context, comment.Set) error { return errStoreDown }
func (failingCommentStore) Load(context.Context, string) (comment.Set, error) {
	return comment.Set{}, errStoreDown
}
func (failingCommentStore) Clear(context.Context, string) error { return errStoreDown }
func (failingCommentStore) Exists(context.Context, string) (bool, error) {
	return false, errStoreDown
}

// --- ExecuteSaveComments tests ---

func TestExecuteSaveComments_FromText(t *testing.T) {
	store := commentstore.NewMemoryStore()
	deps := CommentDeps{Comments: store}

	err := ExecuteSaveComments(context.Background(), SaveCommentsInput{
		SessionID: "sess-1",
		Text:      "first note\r\n\r\nsecond note\n",
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := ExecuteLoadComments(context.Background(), "sess-1", deps)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"first note", "second note"}
	if !reflect.DeepEqual(got.Lines, want) {
		t.Errorf("got lines %v, want %v", got.Lines, want)
	}
}

func TestExecuteSaveComments_FromLines(t *testing.T) {
	store := commentstore.NewMemoryStore()
	deps := CommentDeps{Comments: store}

	lines := []string{"line one", "", "line three"}
	err := ExecuteSaveComments(context.Background(), SaveCommentsInput{
		SessionID: "sess-1",
		Lines:     lines,
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := ExecuteLoadComments(context.Background(), "sess-1", deps)
	if !reflect.DeepEqual(got.Lines, lines) {
		t.Errorf("got lines %v, want %v", got.Lines, lines)
	}
}

func TestExecuteSaveComments_InvalidSession(t *testing.T) {
	deps := CommentDeps{Comments: commentstore.NewMemoryStore()}
	err := ExecuteSaveComments(context.Background(), SaveCommentsInput{
		SessionID: "bad session!",
		Text:      "x",
	}, deps)
	if !errors.Is(err, comment.ErrInvalidSessionID) {
		t.Errorf("got %v, want ErrInvalidSessionID", err)
	}
}

func TestExecuteSaveComments_StoreFailure(t *testing.T) {
	deps := CommentDeps{Comments: failingCommentStore{}}
	err := ExecuteSaveComments(context.Background(), SaveCommentsInput{
		SessionID: "sess-1",
		Text:      "x",
	}, deps)
	if !errors.Is(err, errStoreDown) {
		t.Errorf("got %v, want store error", err)
	}
}

// --- ExecuteLoadComments tests ---

func TestExecuteLoadComments_UnknownSession(t *testing.T) {
	deps := CommentDeps{Comments: commentstore.NewMemoryStore()}

	got, err := ExecuteLoadComments(context.Background(), "never-saved", deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Exists {
		t.Error("unknown session reported as existing")
	}
	if len(got.Lines) != 0 || got.Text != "" {
		t.Errorf("unknown session carried content: %+v", got)
	}
}

func TestExecuteLoadComments_JoinsText(t *testing.T) {
	deps := CommentDeps{Comments: commentstore.NewMemoryStore()}
	ExecuteSaveComments(context.Background(), SaveCommentsInput{
		SessionID: "sess-1",
		Lines:     []string{"a", "", "c"},
	}, deps)

	got, err := ExecuteLoadComments(context.Background(), "sess-1", deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "a\n\nc" {
		t.Errorf("got text %q, want %q", got.Text, "a\n\nc")
	}
	if !got.Exists {
		t.Error("saved session reported as missing")
	}
}

// --- ExecuteClearComments tests ---

func TestExecuteClearComments(t *testing.T) {
	deps := CommentDeps{Comments: commentstore.NewMemoryStore()}
	ExecuteSaveComments(context.Background(), SaveCommentsInput{
		SessionID: "sess-1",
		Lines:     []string{"x"},
	}, deps)

	if err := ExecuteClearComments(context.Background(), "sess-1", deps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := ExecuteLoadComments(context.Background(), "sess-1", deps)
	if got.Exists {
		t.Error("cleared session still reported as existing")
	}

	if err := ExecuteClearComments(context.Background(), "never-saved", deps); err != nil {
		t.Errorf("clearing unknown session: %v", err)
	}
}

// --- ExecuteSyncComments tests ---

func TestExecuteSyncComments_PadsAndPersists(t *testing.T) {
	deps := CommentDeps{Comments: commentstore.NewMemoryStore()}
	ExecuteSaveComments(context.Background(), SaveCommentsInput{
		SessionID: "sess-1",
		Lines:     []string{"a", "b"},
	}, deps)

	synced, err := ExecuteSyncComments(context.Background(), SyncCommentsInput{
		SessionID:   "sess-1",
		TargetLines: 4,
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"a", "b", "", ""}
	if !reflect.DeepEqual(synced, want) {
		t.Errorf("got %v, want %v", synced, want)
	}

	got, _ := ExecuteLoadComments(context.Background(), "sess-1", deps)
	if !reflect.DeepEqual(got.Lines, want) {
		t.Errorf("persisted %v, want %v", got.Lines, want)
	}
}

func TestExecuteSyncComments_Truncates(t *testing.T) {
	deps := CommentDeps{Comments: commentstore.NewMemoryStore()}
	ExecuteSaveComments(context.Background(), SaveCommentsInput{
		SessionID: "sess-1",
		Lines:     []string{"a", "b", "c"},
	}, deps)

	synced, err := ExecuteSyncComments(context.Background(), SyncCommentsInput{
		SessionID:   "sess-1",
		TargetLines: 1,
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(synced, []string{"a"}) {
		t.Errorf("got %v, want [a]", synced)
	}
}

func TestExecuteSyncComments_NegativeTarget(t *testing.T) {
	deps := CommentDeps{Comments: commentstore.NewMemoryStore()}
	_, err := ExecuteSyncComments(context.Background(), SyncCommentsInput{
		SessionID:   "sess-1",
		TargetLines: -3,
	}, deps)
	if !errors.Is(err, comment.ErrNegativeTarget) {
		t.Errorf("got %v, want ErrNegativeTarget", err)
	}
}
