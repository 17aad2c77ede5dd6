package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/consts"
)

// ErrInvalidDate 表示 publish_at 无法解析为日期
var ErrInvalidDate = errors.New("invalid publish_at date")

// 不带时区的格式一律按 UTC 解释，保证结果与服务器时区无关
var publishAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC1123,
	time.RFC1123Z,
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
	"01/02/2006",
}

// ParsePublishAt 将 publish_at 解析为 UTC 时间
func ParsePublishAt(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range publishAtLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

// DerivePublishPath 生成对象存储路径：{YYYY}-{MM}-{DD}/{毫秒时间戳}-{清洗后的文件名}。
//
// 日期取自 publishAt 的 UTC 日历日期，便于按发布日期浏览存储桶；
// 毫秒时间戳取自 now，仅作为每次请求的去重盐值。
func DerivePublishPath(publishAt, filename string, now time.Time) (string, error) {
	date, err := ParsePublishAt(publishAt)
	if err != nil {
		return "", err
	}
	return date.Format("2006-01-02") + "/" +
		strconv.FormatInt(now.UnixMilli(), 10) + "-" +
		SanitizeFilename(filename), nil
}

// SanitizeFilename 把 [A-Za-z0-9._-] 之外的字符替换为 _，空文件名使用默认名
func SanitizeFilename(filename string) string {
	if filename == "" {
		return consts.DefaultPuzzleFilename
	}
	var b strings.Builder
	b.Grow(len(filename))
	for _, r := range filename {
		if isSafeFilenameRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// PathSaltMillis 从派生路径中取回毫秒时间戳，无法识别时 ok=false
func PathSaltMillis(path string) (millis int64, ok bool) {
	slash := strings.LastIndexByte(path, '/')
	name := path[slash+1:]
	dash := strings.IndexByte(name, '-')
	if dash <= 0 {
		return 0, false
	}
	millis, err := strconv.ParseInt(name[:dash], 10, 64)
	if err != nil {
		return 0, false
	}
	return millis, true
}

func isSafeFilenameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '_', r == '-':
		return true
	}
	return false
}
