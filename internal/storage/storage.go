// Package storage 定义谜题图片的对象存储抽象。
//
// 对象键由调用方派生（见 utils.DerivePublishPath），存储层只负责按键读写。
package storage

import (
	"context"
	"errors"
)

// ErrObjectExists 以不覆盖方式写入时目标键已存在
var ErrObjectExists = errors.New("object already exists")

// PutOptions 写入参数
type PutOptions struct {
	ContentType string
	// Overwrite=false 时已存在的对象视为冲突，返回 ErrObjectExists
	Overwrite bool
}

// BlobStore 对象存储接口
type BlobStore interface {
	// Put 把 data 写入 key
	Put(ctx context.Context, key string, data []byte, opts PutOptions) error
	// Remove 删除 key；对象不存在时视为成功
	Remove(ctx context.Context, key string) error
	// Exists 判断 key 是否存在
	Exists(ctx context.Context, key string) (bool, error)
	// List 列出存储桶中的全部对象键
	List(ctx context.Context) ([]string, error)
	// PublicURL 返回浏览器可直接访问的地址
	PublicURL(key string) string
}
