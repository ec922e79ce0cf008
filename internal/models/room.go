package models

import (
	"time"

	"gorm.io/gorm"
)

// Room is a live session hosted by a creator. Settlements resolve the
// creator through the room's HostID.
type Room struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	HostID      uint           `gorm:"not null;index" json:"host_id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	CoverURL    string         `gorm:"size:512" json:"cover_url"`
	Status      string         `gorm:"size:20;not null;index" json:"status"` // LIVE, ENDED
	StartedAt   time.Time      `json:"started_at"`
	EndedAt     *time.Time     `json:"ended_at"`
	ViewerCount int            `gorm:"-" json:"viewer_count"` // filled from the ws hub, not persisted
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Host User `gorm:"foreignKey:HostID" json:"-"`
}

func (Room) TableName() string {
	return "rooms"
}
