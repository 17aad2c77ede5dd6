package service

import (
	"context"
	"strings"
	"time"

	puzzledto "github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/puzzle/dto"
	moduledto "github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/system/dto"
	platformservice "github.com/MacKrakenGames/Rhyming-Pairs/internal/platform/service"
)

// AdminReconcile 触发一次存储对账，默认只报告不删除
func (s *Service) AdminReconcile(ctx context.Context, req moduledto.ReconcileRequest) (*puzzledto.ReconcileReport, error) {
	if s.reconciler == nil {
		return nil, platformservice.NewConfigError("Missing Supabase configuration.")
	}

	opts := puzzledto.ReconcileOptions{Apply: req.Apply}
	if raw := strings.TrimSpace(req.GracePeriod); raw != "" {
		grace, err := time.ParseDuration(raw)
		if err != nil || grace <= 0 {
			return nil, platformservice.NewValidationError("Invalid grace_period.")
		}
		opts.GracePeriod = grace
	}
	return s.reconciler.Reconcile(ctx, opts)
}
