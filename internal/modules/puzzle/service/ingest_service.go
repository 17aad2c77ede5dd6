package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/consts"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/model"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/puzzle/dto"
	platformservice "github.com/MacKrakenGames/Rhyming-Pairs/internal/platform/service"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/storage"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/utils"
)

// Ingest 保存上传的谜题：先写图片，再写记录。
//
// 记录写入失败时会尝试删除刚写入的图片；删除也失败则留下孤儿图片，由对账任务处理。
func (s *Service) Ingest(ctx context.Context, form *utils.MultipartForm) (*dto.IngestResult, error) {
	if err := s.Ready(); err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.ingest(ctx, form)
	size := 0
	if form != nil && form.File != nil {
		size = len(form.File.Data)
	}
	s.observer.RecordIngest(time.Since(start), size, err)
	return result, err
}

func (s *Service) ingest(ctx context.Context, form *utils.MultipartForm) (*dto.IngestResult, error) {
	if form == nil || form.File == nil {
		return nil, platformservice.NewValidationError("Missing file.")
	}

	answers := make(map[string]string, len(consts.AnswerFields))
	for _, field := range consts.AnswerFields {
		value := strings.TrimSpace(form.Field(field))
		if value == "" {
			return nil, platformservice.NewValidationError("Missing answer fields.")
		}
		answers[field] = value
	}

	rawPublishAt := strings.TrimSpace(form.Field(consts.FieldPublishAt))
	if rawPublishAt == "" {
		return nil, platformservice.NewValidationError("Missing publish_at date.")
	}
	publishAt, err := utils.ParsePublishAt(rawPublishAt)
	if err != nil {
		return nil, platformservice.WrapServiceError(platformservice.ErrorCodeInvalidDate, "Invalid publish_at date.", err)
	}
	path, err := utils.DerivePublishPath(rawPublishAt, form.File.Filename, s.now())
	if err != nil {
		return nil, platformservice.WrapServiceError(platformservice.ErrorCodeInvalidDate, "Invalid publish_at date.", err)
	}

	err = s.blobs.Put(ctx, path, form.File.Data, storage.PutOptions{
		ContentType: form.File.ContentType,
		Overwrite:   false,
	})
	if err != nil {
		if errors.Is(err, storage.ErrObjectExists) {
			return nil, platformservice.WrapServiceError(platformservice.ErrorCodeStorageWrite, "Puzzle image path already exists.", err)
		}
		return nil, platformservice.WrapServiceError(platformservice.ErrorCodeStorageWrite, "Failed to upload puzzle image.", err)
	}

	puzzle := &model.Puzzle{
		ImagePath: path,
		Answer1A:  answers[consts.FieldAnswer1A],
		Answer1B:  answers[consts.FieldAnswer1B],
		Answer2A:  answers[consts.FieldAnswer2A],
		Answer2B:  answers[consts.FieldAnswer2B],
		Hints:     SplitHints(form.Field(consts.FieldHints)),
		PublishAt: publishAt,
	}
	if err := s.store.Create(ctx, puzzle); err != nil {
		s.compensate(ctx, path)
		return nil, platformservice.WrapServiceError(platformservice.ErrorCodeMetadataWrite, "Failed to save puzzle.", err)
	}

	return &dto.IngestResult{
		ImageURL:  s.blobs.PublicURL(path),
		ID:        puzzle.ID,
		ImagePath: path,
	}, nil
}

// compensate 删除记录写入失败后留下的图片；请求已取消时仍然执行
func (s *Service) compensate(ctx context.Context, path string) {
	err := s.blobs.Remove(context.WithoutCancel(ctx), path)
	s.observer.RecordCompensation(err)
	if err != nil {
		log.Printf("⚠️ 回滚图片失败，留下孤儿对象 %s: %v", path, err)
		return
	}
	log.Printf("⚠️ 记录写入失败，已删除图片 %s", path)
}
