package repo

import (
	"context"
	"errors"
	"time"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/model"

	"gorm.io/gorm"
)

type StatsRepository struct {
	db *gorm.DB
}

func (r *StatsRepository) CountPuzzles(ctx context.Context, now time.Time) (*PuzzleCounts, error) {
	db := r.db.WithContext(ctx)
	counts := &PuzzleCounts{}

	if err := db.Model(&model.Puzzle{}).Count(&counts.Total).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Puzzle{}).Where("publish_at <= ?", now).Count(&counts.Published).Error; err != nil {
		return nil, err
	}

	next, err := r.publishAt(ctx, "publish_at > ?", "publish_at ASC", now)
	if err != nil {
		return nil, err
	}
	last, err := r.publishAt(ctx, "publish_at <= ?", "publish_at DESC", now)
	if err != nil {
		return nil, err
	}
	counts.NextPublishAt = next
	counts.LastPublishAt = last
	return counts, nil
}

func (r *StatsRepository) publishAt(ctx context.Context, cond, order string, now time.Time) (*time.Time, error) {
	var puzzle model.Puzzle
	err := r.db.WithContext(ctx).Select("publish_at").Where(cond, now).Order(order).First(&puzzle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t := puzzle.PublishAt.UTC()
	return &t, nil
}
