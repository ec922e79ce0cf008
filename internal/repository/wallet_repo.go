package repository

import (
	"errors"

	"darely/internal/models"

	"gorm.io/gorm"
)

var ErrInsufficientBalance = errors.New("insufficient wallet balance")

type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) GetByUserID(userID uint) (*models.Wallet, error) {
	var w models.Wallet
	err := r.db.Where("user_id = ?", userID).First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WalletRepository) GetOrCreate(userID uint) (*models.Wallet, error) {
	w, err := r.GetByUserID(userID)
	if err == nil {
		return w, nil
	}
	w = &models.Wallet{UserID: userID, BalanceCents: 0, Currency: "USD"}
	if err := r.db.Create(w).Error; err != nil {
		// lost a concurrent creation race; the row exists now
		return r.GetByUserID(userID)
	}
	return w, nil
}

// Credit adds to the wallet balance, creating the wallet if absent.
func (r *WalletRepository) Credit(userID uint, amountCents int64) error {
	return CreditWalletTx(r.db, userID, amountCents)
}

// Debit performs a conditional check-and-decrement in a single UPDATE.
// Returns ErrInsufficientBalance when the balance is below amountCents
// (a missing wallet counts as a zero balance).
func (r *WalletRepository) Debit(userID uint, amountCents int64) error {
	return DebitWalletTx(r.db, userID, amountCents)
}

func (r *WalletRepository) ListTransactions(userID uint, limit, offset int) ([]models.WalletTransaction, error) {
	var list []models.WalletTransaction
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

// DebitWalletTx is the one conditional statement every debit goes through.
// The WHERE clause carries the balance check so no caller can read a stale
// balance and write past it.
func DebitWalletTx(tx *gorm.DB, userID uint, amountCents int64) error {
	res := tx.Model(&models.Wallet{}).
		Where("user_id = ? AND balance_cents >= ?", userID, amountCents).
		UpdateColumn("balance_cents", gorm.Expr("balance_cents - ?", amountCents))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientBalance
	}
	return nil
}

// CreditWalletTx increments the balance, provisioning the wallet row when it
// does not exist yet. The unique index on user_id makes concurrent
// first-time creation collapse to one row: the loser of the INSERT race
// falls back to the increment UPDATE.
func CreditWalletTx(tx *gorm.DB, userID uint, amountCents int64) error {
	res := tx.Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		UpdateColumn("balance_cents", gorm.Expr("balance_cents + ?", amountCents))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	w := &models.Wallet{UserID: userID, BalanceCents: amountCents, Currency: "USD"}
	if err := tx.Create(w).Error; err == nil {
		return nil
	}
	res = tx.Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		UpdateColumn("balance_cents", gorm.Expr("balance_cents + ?", amountCents))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
