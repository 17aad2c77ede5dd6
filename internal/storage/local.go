package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/utils"
)

// LocalStore 把对象保存在本地目录 root/{bucket}/{key}，用于开发与自托管部署
type LocalStore struct {
	root      string
	publicURL string
}

// NewLocalStore root 为存储桶目录，publicURL 为该目录对外暴露的 URL 前缀
func NewLocalStore(root, publicURL string) (*LocalStore, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("local storage: root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("local storage: 无法创建存储目录: %w", err)
	}
	return &LocalStore{root: abs, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

// Root 返回存储目录的绝对路径
func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) Put(ctx context.Context, key string, data []byte, opts PutOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dst, err := utils.SecureJoin(s.root, key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("local storage: 无法创建目录: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !opts.Overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	out, err := os.OpenFile(dst, flags, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("local storage: %s: %w", key, ErrObjectExists)
		}
		return fmt.Errorf("local storage: 无法创建文件: %w", err)
	}
	if _, err := out.Write(data); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("local storage: 文件保存失败: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("local storage: 文件保存失败: %w", err)
	}
	return nil
}

func (s *LocalStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := utils.SecureJoin(s.root, key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("local storage: 删除文件失败: %w", err)
	}
	return nil
}

func (s *LocalStore) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	target, err := utils.SecureJoin(s.root, key)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

func (s *LocalStore) List(ctx context.Context) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("local storage: 遍历存储目录失败: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *LocalStore) PublicURL(key string) string {
	return s.publicURL + "/" + key
}
