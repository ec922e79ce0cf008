package models

import (
	"time"

	"darely/internal/domain"

	"gorm.io/gorm"
)

// InteractionRequest is a priced action a fan performed toward a creator in
// a room: a tier purchase, a custom truth/dare, or a tip. AmountCents is
// fixed at settlement and never mutated. IdempotencyKey makes retries
// no-ops instead of double charges.
type InteractionRequest struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	RoomID         uint           `gorm:"not null;index" json:"room_id"`
	FanID          uint           `gorm:"not null;index" json:"fan_id"`
	CreatorID      uint           `gorm:"not null;index" json:"creator_id"`
	Kind           string         `gorm:"size:20;not null;index" json:"kind"` // SYSTEM_TRUTH, SYSTEM_DARE, CUSTOM_TRUTH, CUSTOM_DARE, TIP
	Tier           string         `gorm:"size:10" json:"tier"`                // BRONZE, SILVER, GOLD (empty for custom/tip)
	Content        string         `gorm:"type:text" json:"content"`
	AmountCents    int64          `gorm:"not null" json:"amount_cents"`
	Status         string         `gorm:"size:20;not null;index" json:"status"` // PENDING, ACTIVE, COMPLETED, REJECTED
	IdempotencyKey string         `gorm:"size:128;uniqueIndex;not null" json:"idempotency_key"`
	ActivatedAt    *time.Time     `json:"activated_at"`
	CompletedAt    *time.Time     `json:"completed_at"`
	RejectedAt     *time.Time     `json:"rejected_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Room    Room `gorm:"foreignKey:RoomID" json:"-"`
	Fan     User `gorm:"foreignKey:FanID" json:"-"`
	Creator User `gorm:"foreignKey:CreatorID" json:"-"`
}

func (InteractionRequest) TableName() string {
	return "interaction_requests"
}

func (r *InteractionRequest) IsTerminal() bool {
	return r.Status == domain.RequestStatusCompleted || r.Status == domain.RequestStatusRejected
}

// QueueEntry surfaces a settled InteractionRequest on the creator's queue.
// Created only inside the settlement transaction, so an entry never exists
// without its request or without the payment having moved.
type QueueEntry struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	RequestID   uint           `gorm:"uniqueIndex;not null" json:"request_id"`
	RoomID      uint           `gorm:"not null;index" json:"room_id"`
	CreatorID   uint           `gorm:"not null;index" json:"creator_id"`
	FanID       uint           `gorm:"not null" json:"fan_id"`
	Kind        string         `gorm:"size:20;not null" json:"kind"`
	AmountCents int64          `gorm:"not null" json:"amount_cents"`
	Status      string         `gorm:"size:20;not null;index" json:"status"` // mirrors the request status
	Prompt      string         `gorm:"type:text" json:"prompt"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Request InteractionRequest `gorm:"foreignKey:RequestID" json:"-"`
}

func (QueueEntry) TableName() string {
	return "queue_entries"
}
