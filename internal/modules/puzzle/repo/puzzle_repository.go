package repo

import (
	"context"
	"errors"
	"time"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/model"
)

var ErrPuzzleNotFound = errors.New("puzzle not found")

type ListPuzzlesParams struct {
	// PublishedBefore 非 nil 时只返回 publish_at <= 该时间的记录
	PublishedBefore *time.Time
}

type PuzzleStore interface {
	Create(ctx context.Context, puzzle *model.Puzzle) error
	FindByID(ctx context.Context, id string) (*model.Puzzle, error)
	DeleteByID(ctx context.Context, id string) error
	List(ctx context.Context, params ListPuzzlesParams) ([]model.Puzzle, error)
	ListImagePaths(ctx context.Context) ([]string, error)
}
