package model

import (
	"time"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/consts"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Puzzle struct {
	ID        string                      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ImagePath string                      `json:"image_path" gorm:"not null;uniqueIndex;size:512"`
	Answer1A  string                      `json:"answer_1a" gorm:"column:answer_1a;not null"`
	Answer1B  string                      `json:"answer_1b" gorm:"column:answer_1b;not null"`
	Answer2A  string                      `json:"answer_2a" gorm:"column:answer_2a;not null"`
	Answer2B  string                      `json:"answer_2b" gorm:"column:answer_2b;not null"`
	Hints     datatypes.JSONSlice[string] `json:"hints" gorm:"not null"`
	PublishAt time.Time                   `json:"publish_at" gorm:"not null;index"`
	CreatedAt time.Time                   `json:"created_at"`
}

func (Puzzle) TableName() string {
	return consts.PuzzleTable
}

// BeforeCreate 由存储层生成主键
func (p *Puzzle) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Hints == nil {
		p.Hints = datatypes.JSONSlice[string]{}
	}
	return nil
}
