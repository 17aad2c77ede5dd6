package service

import (
	"context"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/model"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/puzzle/dto"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/puzzle/repo"
	platformservice "github.com/MacKrakenGames/Rhyming-Pairs/internal/platform/service"
)

// ListPublic 公开列表，是否隐藏未发布谜题由 listing.hide_unpublished 决定
func (s *Service) ListPublic(ctx context.Context) ([]dto.PuzzleView, error) {
	return s.List(ctx, dto.ListOptions{PublishedOnly: s.opts.HideUnpublished})
}

// ListAdmin 管理列表总是返回全部谜题
func (s *Service) ListAdmin(ctx context.Context) ([]dto.PuzzleView, error) {
	return s.List(ctx, dto.ListOptions{})
}

func (s *Service) List(ctx context.Context, opts dto.ListOptions) ([]dto.PuzzleView, error) {
	if err := s.Ready(); err != nil {
		return nil, err
	}

	var params repo.ListPuzzlesParams
	if opts.PublishedOnly {
		now := s.now().UTC()
		params.PublishedBefore = &now
	}
	puzzles, err := s.store.List(ctx, params)
	if err != nil {
		return nil, platformservice.WrapServiceError(platformservice.ErrorCodeRead, "Failed to load puzzles.", err)
	}

	views := make([]dto.PuzzleView, 0, len(puzzles))
	for i := range puzzles {
		views = append(views, s.toView(&puzzles[i]))
	}
	return views, nil
}

func (s *Service) toView(p *model.Puzzle) dto.PuzzleView {
	hints := []string(p.Hints)
	if hints == nil {
		hints = []string{}
	}
	return dto.PuzzleView{
		ID:  p.ID,
		Img: s.blobs.PublicURL(p.ImagePath),
		Answers: [2][2]string{
			{p.Answer1A, p.Answer1B},
			{p.Answer2A, p.Answer2B},
		},
		Hints:     hints,
		PublishAt: p.PublishAt.UTC(),
	}
}
