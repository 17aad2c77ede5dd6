package repo

import (
	"context"
	"testing"
	"time"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/model"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/testutils"
)

// 测试内容：验证空表统计为零且时间字段为 nil。
func TestCountPuzzles_Empty(t *testing.T) {
	store := NewStatsRepository(testutils.SetupDB(t))

	counts, err := store.CountPuzzles(context.Background(), time.Now().UTC())
	if err != nil {
		t.Fatalf("CountPuzzles: %v", err)
	}
	if counts.Total != 0 || counts.Published != 0 {
		t.Fatalf("期望计数为 0，实际为 %+v", counts)
	}
	if counts.NextPublishAt != nil || counts.LastPublishAt != nil {
		t.Fatalf("期望时间字段为 nil，实际为 %+v", counts)
	}
}

// 测试内容：验证已发布与待发布的划分以及最近发布时间。
func TestCountPuzzles_SplitsByNow(t *testing.T) {
	gdb := testutils.SetupDB(t)
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	for i, at := range []time.Time{now.Add(-48 * time.Hour), now.Add(-time.Hour), now.Add(24 * time.Hour), now.Add(72 * time.Hour)} {
		p := &model.Puzzle{
			ImagePath: "2024-03-05/" + at.Format("150405") + "-" + string(rune('a'+i)) + ".png",
			Answer1A:  "a", Answer1B: "b", Answer2A: "c", Answer2B: "d",
			PublishAt: at,
		}
		if err := gdb.Create(p).Error; err != nil {
			t.Fatalf("写入测试数据失败: %v", err)
		}
	}

	counts, err := NewStatsRepository(gdb).CountPuzzles(context.Background(), now)
	if err != nil {
		t.Fatalf("CountPuzzles: %v", err)
	}
	if counts.Total != 4 || counts.Published != 2 {
		t.Fatalf("期望总数 4、已发布 2，实际为 %d/%d", counts.Total, counts.Published)
	}
	if counts.NextPublishAt == nil || !counts.NextPublishAt.Equal(now.Add(24*time.Hour)) {
		t.Fatalf("期望下一次发布为 %v，实际为 %v", now.Add(24*time.Hour), counts.NextPublishAt)
	}
	if counts.LastPublishAt == nil || !counts.LastPublishAt.Equal(now.Add(-time.Hour)) {
		t.Fatalf("期望最近发布为 %v，实际为 %v", now.Add(-time.Hour), counts.LastPublishAt)
	}
}
