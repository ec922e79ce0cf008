package repository

import (
	"time"

	"darely/internal/domain"
	"darely/internal/models"

	"gorm.io/gorm"
)

type InteractionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{db: db}
}

func (r *InteractionRepository) GetByID(id uint) (*models.InteractionRequest, error) {
	var req models.InteractionRequest
	err := r.db.First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *InteractionRepository) GetByIdempotencyKey(key string) (*models.InteractionRequest, error) {
	var req models.InteractionRequest
	err := r.db.Where("idempotency_key = ?", key).First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *InteractionRepository) ListByFanID(fanID uint, limit, offset int) ([]models.InteractionRequest, error) {
	var list []models.InteractionRequest
	err := r.db.Where("fan_id = ?", fanID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *InteractionRepository) ListByCreatorID(creatorID uint, limit, offset int) ([]models.InteractionRequest, error) {
	var list []models.InteractionRequest
	err := r.db.Where("creator_id = ?", creatorID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

// Queue entries

func (r *InteractionRepository) GetQueueEntryByID(id uint) (*models.QueueEntry, error) {
	var e models.QueueEntry
	err := r.db.First(&e, id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *InteractionRepository) ListQueueByCreatorID(creatorID uint, statuses []string, limit int) ([]models.QueueEntry, error) {
	var list []models.QueueEntry
	q := r.db.Where("creator_id = ?", creatorID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	err := q.Order("created_at ASC").Limit(limit).Find(&list).Error
	return list, err
}

// CountPendingByCreatorID returns the number of PENDING queue entries (for badge).
func (r *InteractionRepository) CountPendingByCreatorID(creatorID uint) (int64, error) {
	var c int64
	err := r.db.Model(&models.QueueEntry{}).
		Where("creator_id = ? AND status = ?", creatorID, domain.RequestStatusPending).Count(&c).Error
	return c, err
}

// Transition moves a request and its queue entry from one status to another
// in a single transaction. The WHERE on the current status makes invalid or
// concurrent transitions lose cleanly instead of double-applying.
func (r *InteractionRepository) Transition(requestID uint, from, to string) (*models.InteractionRequest, error) {
	var req models.InteractionRequest
	err := r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		updates := map[string]interface{}{"status": to, "updated_at": now}
		switch to {
		case domain.RequestStatusActive:
			updates["activated_at"] = now
		case domain.RequestStatusCompleted:
			updates["completed_at"] = now
		case domain.RequestStatusRejected:
			updates["rejected_at"] = now
		}
		res := tx.Model(&models.InteractionRequest{}).
			Where("id = ? AND status = ?", requestID, from).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Model(&models.QueueEntry{}).
			Where("request_id = ?", requestID).
			Updates(map[string]interface{}{"status": to, "updated_at": now}).Error; err != nil {
			return err
		}
		return tx.First(&req, requestID).Error
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetEarningsByCreatorID returns total settled earnings for the creator.
func (r *InteractionRepository) GetEarningsByCreatorID(creatorID uint) (int64, error) {
	var sum int64
	err := r.db.Model(&models.InteractionRequest{}).
		Select("COALESCE(SUM(amount_cents), 0)").
		Where("creator_id = ?", creatorID).
		Scan(&sum).Error
	return sum, err
}
