package service

import (
	"time"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/config"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/metrics"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/puzzle/repo"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/platform/redisx"
	platformservice "github.com/MacKrakenGames/Rhyming-Pairs/internal/platform/service"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/storage"
)

const missingConfigMessage = "Missing Supabase configuration."

// Options 服务运行参数，由配置文件派生
type Options struct {
	HideUnpublished bool
	GracePeriod     time.Duration
	LockTTL         time.Duration
}

func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return Options{}
	}
	return Options{
		HideUnpublished: cfg.Listing.HideUnpublished,
		GracePeriod:     cfg.Reconcile.GracePeriod,
		LockTTL:         cfg.Reconcile.LockTTL,
	}
}

type Service struct {
	store    repo.PuzzleStore
	blobs    storage.BlobStore
	observer metrics.Observer
	locker   redisx.Locker
	opts     Options
	now      func() time.Time
}

// New blobs 为 nil 表示对象存储未配置，所有操作返回配置错误
func New(opts Options, store repo.PuzzleStore, blobs storage.BlobStore, observer metrics.Observer, locker redisx.Locker) *Service {
	if observer == nil {
		observer = metrics.Nop()
	}
	if locker == nil {
		locker = redisx.NewMemoryLocker()
	}
	if opts.GracePeriod <= 0 {
		opts.GracePeriod = 15 * time.Minute
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = 10 * time.Minute
	}
	return &Service{
		store:    store,
		blobs:    blobs,
		observer: observer,
		locker:   locker,
		opts:     opts,
		now:      time.Now,
	}
}

// SetClock 替换时钟，测试用
func (s *Service) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Ready 在访问任何后端之前检查依赖是否齐全
func (s *Service) Ready() error {
	if s == nil || s.store == nil || s.blobs == nil {
		return platformservice.NewConfigError(missingConfigMessage)
	}
	return nil
}
