package dto

import "time"

type SystemInfoResponse struct {
	OS           string `json:"os"`
	Arch         string `json:"arch"`
	GoVersion    string `json:"go_version"`
	NumCPU       int    `json:"num_cpu"`
	NumGoroutine int    `json:"num_goroutine"`
}

// PuzzleStatsResponse 管理端概览
type PuzzleStatsResponse struct {
	PuzzleCount    int64              `json:"puzzle_count"`
	PublishedCount int64              `json:"published_count"`
	ScheduledCount int64              `json:"scheduled_count"`
	NextPublishAt  *time.Time         `json:"next_publish_at"`
	LastPublishAt  *time.Time         `json:"last_publish_at"`
	SystemInfo     SystemInfoResponse `json:"system_info"`
}

// ReconcileRequest grace_period 为 Go duration 字符串，例如 "30m"；为空使用配置值
type ReconcileRequest struct {
	Apply       bool   `json:"apply"`
	GracePeriod string `json:"grace_period"`
}
