package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/puzzle/dto"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/platform/redisx"
	platformservice "github.com/MacKrakenGames/Rhyming-Pairs/internal/platform/service"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/utils"

	"golang.org/x/sync/errgroup"
)

const reconcileLockName = "puzzle_reconcile"

// Reconcile 对比存储桶与记录表。
//
// 孤儿图片：没有记录引用、且路径中的时间戳早于宽限期（排除正在上传的请求）。Apply 时删除。
// 悬空记录：引用的图片不存在，只报告不处理。
// 路径无法识别时间戳的对象不是本服务写入的，只报告不删除。
func (s *Service) Reconcile(ctx context.Context, opts dto.ReconcileOptions) (*dto.ReconcileReport, error) {
	if err := s.Ready(); err != nil {
		return nil, err
	}

	release, err := s.locker.Acquire(ctx, reconcileLockName, s.opts.LockTTL)
	if err != nil {
		if errors.Is(err, redisx.ErrLockHeld) {
			return nil, platformservice.NewServiceError(platformservice.ErrorCodeConflict, "Reconcile is already running.")
		}
		return nil, platformservice.WrapServiceError(platformservice.ErrorCodeInternal, "Failed to acquire reconcile lock.", err)
	}
	defer release()

	start := time.Now()
	report, err := s.reconcile(ctx, opts)
	if report != nil {
		s.observer.RecordReconcile(time.Since(start), len(report.Orphans), len(report.Dangling), len(report.Removed), err)
	} else {
		s.observer.RecordReconcile(time.Since(start), 0, 0, 0, err)
	}
	return report, err
}

func (s *Service) reconcile(ctx context.Context, opts dto.ReconcileOptions) (*dto.ReconcileReport, error) {
	var keys, paths []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		keys, err = s.blobs.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		paths, err = s.store.ListImagePaths(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, platformservice.WrapServiceError(platformservice.ErrorCodeRead, "Failed to list puzzle storage.", err)
	}

	grace := opts.GracePeriod
	if grace <= 0 {
		grace = s.opts.GracePeriod
	}
	cutoff := s.now().Add(-grace)

	report := &dto.ReconcileReport{
		BlobCount:   len(keys),
		RecordCount: len(paths),
		Orphans:     []string{},
		Dangling:    []string{},
		InFlight:    []string{},
		Unknown:     []string{},
		Removed:     []string{},
		Applied:     opts.Apply,
	}

	recorded := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		recorded[path] = struct{}{}
	}
	stored := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		stored[key] = struct{}{}
		if _, ok := recorded[key]; ok {
			continue
		}
		millis, ok := utils.PathSaltMillis(key)
		switch {
		case !ok:
			report.Unknown = append(report.Unknown, key)
		case time.UnixMilli(millis).After(cutoff):
			report.InFlight = append(report.InFlight, key)
		default:
			report.Orphans = append(report.Orphans, key)
		}
	}
	for _, path := range paths {
		if _, ok := stored[path]; !ok {
			report.Dangling = append(report.Dangling, path)
		}
	}

	if !opts.Apply {
		return report, nil
	}
	for _, key := range report.Orphans {
		if err := s.blobs.Remove(ctx, key); err != nil {
			log.Printf("⚠️ 删除孤儿图片失败 %s: %v", key, err)
			report.Failed = append(report.Failed, dto.ReconcileFailure{Key: key, Error: err.Error()})
			continue
		}
		report.Removed = append(report.Removed, key)
	}
	log.Printf("✅ 对账完成: 孤儿 %d (已删除 %d)，悬空记录 %d", len(report.Orphans), len(report.Removed), len(report.Dangling))
	return report, nil
}
