package dto

import "time"

type IngestResult struct {
	ImageURL  string `json:"image_url"`
	ID        string `json:"-"`
	ImagePath string `json:"-"`
}

// PuzzleView 对外的谜题结构，公开与管理列表共用
type PuzzleView struct {
	ID        string       `json:"id"`
	Img       string       `json:"img"`
	Answers   [2][2]string `json:"answers"`
	Hints     []string     `json:"hints"`
	PublishAt time.Time    `json:"publish_at"`
}

type ListOptions struct {
	// PublishedOnly 只返回 publish_at 不晚于当前时间的谜题
	PublishedOnly bool
}

type ReconcileOptions struct {
	Apply       bool
	GracePeriod time.Duration
}

type ReconcileFailure struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

// ReconcileReport 一次对账的结果
type ReconcileReport struct {
	BlobCount   int                `json:"blob_count"`
	RecordCount int                `json:"record_count"`
	Orphans     []string           `json:"orphans"`
	Dangling    []string           `json:"dangling"`
	InFlight    []string           `json:"in_flight"`
	Unknown     []string           `json:"unknown"`
	Removed     []string           `json:"removed"`
	Failed      []ReconcileFailure `json:"failed,omitempty"`
	Applied     bool               `json:"applied"`
}
