package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/puzzle/repo"
	platformservice "github.com/MacKrakenGames/Rhyming-Pairs/internal/platform/service"
)

// Delete 先删图片再删记录。
//
// id 只有为空串时才算缺失，空白 id 照常查找。
// 图片删除失败时记录保持不变；图片已删而记录删除失败时留下悬空记录，只记日志。
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.Ready(); err != nil {
		return err
	}
	if id == "" {
		return platformservice.NewValidationError("Missing puzzle id.")
	}

	start := time.Now()
	err := s.delete(ctx, id)
	s.observer.RecordDelete(time.Since(start), err)
	return err
}

func (s *Service) delete(ctx context.Context, id string) error {
	puzzle, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrPuzzleNotFound) {
			return platformservice.NewNotFoundError("Puzzle not found.")
		}
		return platformservice.WrapServiceError(platformservice.ErrorCodeRead, "Failed to load puzzle.", err)
	}

	if err := s.blobs.Remove(ctx, puzzle.ImagePath); err != nil {
		return platformservice.WrapServiceError(platformservice.ErrorCodeStorageDelete, "Failed to delete puzzle image.", err)
	}

	if err := s.store.DeleteByID(ctx, puzzle.ID); err != nil {
		log.Printf("⚠️ 图片已删除但记录删除失败，留下悬空记录 %s (%s): %v", puzzle.ID, puzzle.ImagePath, err)
		return platformservice.WrapServiceError(platformservice.ErrorCodeMetadataWrite, "Failed to delete puzzle.", err)
	}
	return nil
}
