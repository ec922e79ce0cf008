package repository

import (
	"time"

	"darely/internal/domain"
	"darely/internal/models"

	"gorm.io/gorm"
)

type WithdrawalRepository struct {
	db *gorm.DB
}

func NewWithdrawalRepository(db *gorm.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

// CreateWithDebit debits the wallet and records the withdrawal in one
// transaction, so a payout request can never exist without its debit.
func (r *WithdrawalRepository) CreateWithDebit(w *models.Withdrawal) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := DebitWalletTx(tx, w.UserID, w.AmountCents); err != nil {
			return err
		}
		if err := tx.Create(w).Error; err != nil {
			return err
		}
		return tx.Create(&models.WalletTransaction{
			UserID:      w.UserID,
			AmountCents: -w.AmountCents,
			Type:        domain.TxTypeWithdrawal,
			Reference:   w.OrderID,
		}).Error
	})
}

func (r *WithdrawalRepository) GetByOrderID(orderID string) (*models.Withdrawal, error) {
	var w models.Withdrawal
	err := r.db.Where("order_id = ?", orderID).First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WithdrawalRepository) ListByUserID(userID uint, limit, offset int) ([]models.Withdrawal, error) {
	var list []models.Withdrawal
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

// Complete marks a pending withdrawal COMPLETED; replays are no-ops.
func (r *WithdrawalRepository) Complete(orderID, providerRef string) error {
	now := time.Now()
	res := r.db.Model(&models.Withdrawal{}).
		Where("order_id = ? AND status = ?", orderID, "PENDING").
		Updates(map[string]interface{}{"status": "COMPLETED", "provider_ref": providerRef, "completed_at": now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Fail marks a pending withdrawal FAILED and refunds the debit.
func (r *WithdrawalRepository) Fail(orderID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var w models.Withdrawal
		if err := tx.Where("order_id = ?", orderID).First(&w).Error; err != nil {
			return err
		}
		res := tx.Model(&models.Withdrawal{}).
			Where("id = ? AND status = ?", w.ID, "PENDING").
			Update("status", "FAILED")
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := CreditWalletTx(tx, w.UserID, w.AmountCents); err != nil {
			return err
		}
		return tx.Create(&models.WalletTransaction{
			UserID:      w.UserID,
			AmountCents: w.AmountCents,
			Type:        domain.TxTypeRefund,
			Reference:   w.OrderID,
		}).Error
	})
}
