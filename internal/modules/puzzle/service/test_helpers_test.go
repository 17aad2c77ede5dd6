package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/model"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/puzzle/repo"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/testutils"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/utils"
)

var errInjected = errors.New("injected failure")

// faultyStore 在真实仓储外包一层，按需注入写入/删除失败
type faultyStore struct {
	repo.PuzzleStore
	createErr error
	deleteErr error
	findErr   error
	listErr   error
}

func (f *faultyStore) Create(ctx context.Context, p *model.Puzzle) error {
	if f.createErr != nil {
		return f.createErr
	}
	return f.PuzzleStore.Create(ctx, p)
}

func (f *faultyStore) DeleteByID(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.PuzzleStore.DeleteByID(ctx, id)
}

func (f *faultyStore) FindByID(ctx context.Context, id string) (*model.Puzzle, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.PuzzleStore.FindByID(ctx, id)
}

func (f *faultyStore) List(ctx context.Context, params repo.ListPuzzlesParams) ([]model.Puzzle, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.PuzzleStore.List(ctx, params)
}

type fixture struct {
	svc   *Service
	store *faultyStore
	blobs *testutils.MemoryBlobStore
	now   time.Time
}

var fixedNow = time.Date(2024, 3, 5, 1, 33, 20, 123_000_000, time.UTC)

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	gdb := testutils.SetupDB(t)
	store := &faultyStore{PuzzleStore: repo.NewPuzzleRepository(gdb)}
	blobs := testutils.NewMemoryBlobStore()
	svc := New(opts, store, blobs, nil, nil)
	f := &fixture{svc: svc, store: store, blobs: blobs, now: fixedNow}
	svc.SetClock(func() time.Time { return f.now })
	return f
}

func validForm(filename string) *utils.MultipartForm {
	return &utils.MultipartForm{
		Fields: map[string]string{
			"answer_1a":  " cat ",
			"answer_1b":  "hat",
			"answer_2a":  "dog",
			"answer_2b":  "log ",
			"hints":      "first\n\n second \n",
			"publish_at": "2024-03-05T00:00:00Z",
		},
		File: &utils.UploadedFile{
			Data:        []byte("\x89PNG fake"),
			Filename:    filename,
			ContentType: "image/png",
		},
	}
}
