package utils

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

// SecureJoin 将对象键（以 / 分隔）安全地拼接到 basePath 下，返回绝对路径。
//
// 拒绝绝对路径与 ".." 越界；已存在的路径节点不能是符号链接。
func SecureJoin(basePath, key string) (string, error) {
	baseAbs, err := filepath.Abs(basePath)
	if err != nil {
		return "", fmt.Errorf("路径解析失败: %w", err)
	}

	cleanKey := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	if cleanKey != "/"+strings.TrimPrefix(key, "/") || strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("非法对象键: %q", key)
	}
	cleanKey = strings.TrimPrefix(cleanKey, "/")
	if cleanKey == "" {
		return "", fmt.Errorf("非法对象键: 空路径")
	}

	targetAbs := filepath.Join(baseAbs, filepath.FromSlash(cleanKey))
	if err := ensureNoSymlinkBetween(baseAbs, targetAbs); err != nil {
		return "", err
	}
	return targetAbs, nil
}

// ensureNoSymlinkBetween 从 target 逐级回溯到 base，已存在的节点都不能是符号链接
func ensureNoSymlinkBetween(baseAbs, targetAbs string) error {
	rel, err := filepath.Rel(baseAbs, targetAbs)
	if err != nil {
		return fmt.Errorf("非法路径: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return fmt.Errorf("非法路径: 目标超出基目录")
	}

	current := targetAbs
	for !samePath(current, baseAbs) {
		info, statErr := os.Lstat(current)
		if statErr == nil {
			if info.Mode()&os.ModeSymlink != 0 {
				return fmt.Errorf("检测到符号链接穿透风险: %s", current)
			}
		} else if !os.IsNotExist(statErr) {
			return fmt.Errorf("检查路径失败: %w", statErr)
		}

		parent := filepath.Dir(current)
		if samePath(parent, current) {
			return fmt.Errorf("非法路径: 无法定位到安全基目录")
		}
		current = parent
	}
	return nil
}

func samePath(a, b string) bool {
	a = filepath.Clean(a)
	b = filepath.Clean(b)
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}
