package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/puzzle/repo"
	platformservice "github.com/MacKrakenGames/Rhyming-Pairs/internal/platform/service"
)

// 测试内容：验证删除会同时移除图片与记录。
func TestDelete_RemovesBlobThenRow(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()
	res, err := f.svc.Ingest(ctx, validForm("a.png"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if err := f.svc.Delete(ctx, res.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := f.blobs.Object(res.ImagePath); ok {
		t.Fatalf("期望图片已删除")
	}
	if _, err := f.store.FindByID(ctx, res.ID); !errors.Is(err, repo.ErrPuzzleNotFound) {
		t.Fatalf("期望记录已删除，实际为 %v", err)
	}
}

// 测试内容：验证空 id 返回 400 且不访问后端；不存在的 id 与空白 id 都按查找失败返回 404。
func TestDelete_MissingAndUnknownID(t *testing.T) {
	f := newFixture(t, Options{})

	err := f.svc.Delete(context.Background(), "")
	if se, ok := platformservice.AsServiceError(err); !ok || se.Message != "Missing puzzle id." {
		t.Fatalf("期望 Missing puzzle id.，实际为 %v", err)
	}
	for _, id := range []string{"nope", "  "} {
		err = f.svc.Delete(context.Background(), id)
		if se, ok := platformservice.AsServiceError(err); !ok || se.Code != platformservice.ErrorCodeNotFound || se.Message != "Puzzle not found." {
			t.Fatalf("%q: 期望 404，实际为 %v", id, err)
		}
	}
	if f.blobs.Mutations() != 0 {
		t.Fatalf("不应访问对象存储，实际调用 %v", f.blobs.Calls)
	}
}

// 测试内容：验证图片删除失败时记录仍然存在。
func TestDelete_BlobFailureKeepsRecord(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()
	res, err := f.svc.Ingest(ctx, validForm("a.png"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	f.blobs.RemoveErr = errInjected

	if err := f.svc.Delete(ctx, res.ID); !platformservice.IsCode(err, platformservice.ErrorCodeStorageDelete) {
		t.Fatalf("期望 storage_delete，实际为 %v", err)
	}
	if _, err := f.store.FindByID(ctx, res.ID); err != nil {
		t.Fatalf("期望记录仍然存在，实际为 %v", err)
	}
	if _, ok := f.blobs.Object(res.ImagePath); !ok {
		t.Fatalf("期望图片仍然存在")
	}
}

// 测试内容：验证图片已删除但记录删除失败时，图片确认不存在且记录悬空。
func TestDelete_RowFailureLeavesDangling(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()
	res, err := f.svc.Ingest(ctx, validForm("a.png"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	f.store.deleteErr = errInjected

	if err := f.svc.Delete(ctx, res.ID); !platformservice.IsCode(err, platformservice.ErrorCodeMetadataWrite) {
		t.Fatalf("期望 metadata_write，实际为 %v", err)
	}
	if ok, _ := f.blobs.Exists(ctx, res.ImagePath); ok {
		t.Fatalf("期望图片已不存在")
	}
	if _, err := f.store.FindByID(ctx, res.ID); err != nil {
		t.Fatalf("期望记录悬空保留，实际为 %v", err)
	}
}

// 测试内容：验证查询失败（非不存在）时返回 read 错误。
func TestDelete_LookupFailure(t *testing.T) {
	f := newFixture(t, Options{})
	f.store.findErr = errInjected
	if err := f.svc.Delete(context.Background(), "x"); !platformservice.IsCode(err, platformservice.ErrorCodeRead) {
		t.Fatalf("期望 read 错误，实际为 %v", err)
	}
}
