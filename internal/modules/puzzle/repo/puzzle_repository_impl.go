package repo

import (
	"context"
	"errors"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/model"

	"gorm.io/gorm"
)

type PuzzleRepository struct {
	db *gorm.DB
}

func NewPuzzleRepository(db *gorm.DB) *PuzzleRepository {
	return &PuzzleRepository{db: db}
}

func (r *PuzzleRepository) Create(ctx context.Context, puzzle *model.Puzzle) error {
	return r.db.WithContext(ctx).Create(puzzle).Error
}

func (r *PuzzleRepository) FindByID(ctx context.Context, id string) (*model.Puzzle, error) {
	var puzzle model.Puzzle
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&puzzle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPuzzleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &puzzle, nil
}

// DeleteByID 删除不存在的记录视为成功，并发删除时第二次为空操作
func (r *PuzzleRepository) DeleteByID(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Puzzle{}).Error
}

// List 按 publish_at 升序返回，同一时间按创建顺序
func (r *PuzzleRepository) List(ctx context.Context, params ListPuzzlesParams) ([]model.Puzzle, error) {
	var puzzles []model.Puzzle
	query := r.db.WithContext(ctx).Model(&model.Puzzle{})
	if params.PublishedBefore != nil {
		query = query.Where("publish_at <= ?", *params.PublishedBefore)
	}
	err := query.Order("publish_at ASC").Order("created_at ASC").Order("id ASC").Find(&puzzles).Error
	return puzzles, err
}

func (r *PuzzleRepository) ListImagePaths(ctx context.Context) ([]string, error) {
	var paths []string
	err := r.db.WithContext(ctx).Model(&model.Puzzle{}).Order("image_path ASC").Pluck("image_path", &paths).Error
	return paths, err
}
