package service

import (
	"context"
	"runtime"

	moduledto "github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/system/dto"
	platformservice "github.com/MacKrakenGames/Rhyming-Pairs/internal/platform/service"
)

// AdminGetPuzzleStats 获取后台概览统计数据。
func (s *Service) AdminGetPuzzleStats(ctx context.Context) (*moduledto.PuzzleStatsResponse, error) {
	if s.statsStore == nil {
		return nil, platformservice.NewConfigError("Missing Supabase configuration.")
	}
	counts, err := s.statsStore.CountPuzzles(ctx, s.now().UTC())
	if err != nil {
		return nil, platformservice.WrapServiceError(platformservice.ErrorCodeRead, "Failed to read puzzle stats.", err)
	}

	return &moduledto.PuzzleStatsResponse{
		PuzzleCount:    counts.Total,
		PublishedCount: counts.Published,
		ScheduledCount: counts.Total - counts.Published,
		NextPublishAt:  counts.NextPublishAt,
		LastPublishAt:  counts.LastPublishAt,
		SystemInfo: moduledto.SystemInfoResponse{
			OS:           runtime.GOOS,
			Arch:         runtime.GOARCH,
			GoVersion:    runtime.Version(),
			NumCPU:       runtime.NumCPU(),
			NumGoroutine: runtime.NumGoroutine(),
		},
	}, nil
}
