package service

import (
	"context"
	"time"

	puzzledto "github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/puzzle/dto"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/system/repo"
)

// Reconciler 由谜题服务实现
type Reconciler interface {
	Reconcile(ctx context.Context, opts puzzledto.ReconcileOptions) (*puzzledto.ReconcileReport, error)
}

type Service struct {
	statsStore repo.StatsStore
	reconciler Reconciler
	now        func() time.Time
}

func New(statsStore repo.StatsStore, reconciler Reconciler) *Service {
	return &Service{
		statsStore: statsStore,
		reconciler: reconciler,
		now:        time.Now,
	}
}

// SetClock 替换时钟，测试用
func (s *Service) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}
