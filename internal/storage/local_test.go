package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// 测试内容：验证本地存储的写入、列举、删除与公共 URL。
func TestLocalStore_RoundTrip(t *testing.T) {
	store, err := NewLocalStore(filepath.Join(t.TempDir(), "puzzleimages"), "/storage/puzzleimages/")
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	ctx := context.Background()

	key := "2024-03-05/1709600000000-a.png"
	if err := store.Put(ctx, key, []byte("png"), PutOptions{}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(store.Root(), "2024-03-05", "1709600000000-a.png"))
	if err != nil || string(data) != "png" {
		t.Fatalf("文件内容错误: %q %v", data, err)
	}
	if ok, _ := store.Exists(ctx, key); !ok {
		t.Fatalf("期望对象存在")
	}

	keys, err := store.List(ctx)
	if err != nil || len(keys) != 1 || keys[0] != key {
		t.Fatalf("列举结果错误: %v %v", keys, err)
	}
	if got := store.PublicURL(key); got != "/storage/puzzleimages/"+key {
		t.Fatalf("公共 URL 错误: %q", got)
	}

	if err := store.Remove(ctx, key); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if ok, _ := store.Exists(ctx, key); ok {
		t.Fatalf("期望对象已删除")
	}
	if err := store.Remove(ctx, key); err != nil {
		t.Fatalf("删除不存在的对象期望成功: %v", err)
	}
}

// 测试内容：验证不覆盖写入时已存在对象返回 ErrObjectExists 且原内容不变。
func TestLocalStore_PutConflict(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/s")
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	ctx := context.Background()

	if err := store.Put(ctx, "d/1-x.png", []byte("first"), PutOptions{}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put(ctx, "d/1-x.png", []byte("second"), PutOptions{}); !errors.Is(err, ErrObjectExists) {
		t.Fatalf("期望 ErrObjectExists，实际为 %v", err)
	}
	data, _ := os.ReadFile(filepath.Join(store.Root(), "d", "1-x.png"))
	if string(data) != "first" {
		t.Fatalf("冲突写入不应修改原内容，实际为 %q", data)
	}
}

// 测试内容：验证越界的对象键被拒绝。
func TestLocalStore_RejectsTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/s")
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	if err := store.Put(context.Background(), "../evil.png", []byte("x"), PutOptions{}); err == nil {
		t.Fatalf("期望越界键被拒绝")
	}
}
