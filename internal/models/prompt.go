package models

import (
	"time"

	"gorm.io/gorm"
)

// DarePrompt is a system prompt in the truth/dare pool, keyed by kind+tier.
type DarePrompt struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Kind      string         `gorm:"size:20;not null;index" json:"kind"` // SYSTEM_TRUTH, SYSTEM_DARE
	Tier      string         `gorm:"size:10;not null;index" json:"tier"`
	Text      string         `gorm:"type:text;not null" json:"text"`
	IsActive  bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (DarePrompt) TableName() string {
	return "dare_prompts"
}
