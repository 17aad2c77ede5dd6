package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// PuzzleCounts 统计结果，时间字段在没有对应记录时为 nil
type PuzzleCounts struct {
	Total         int64
	Published     int64
	NextPublishAt *time.Time
	LastPublishAt *time.Time
}

type StatsStore interface {
	CountPuzzles(ctx context.Context, now time.Time) (*PuzzleCounts, error)
}

func NewStatsRepository(db *gorm.DB) StatsStore {
	return &StatsRepository{db: db}
}
