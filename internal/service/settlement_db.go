package service

import (
	"context"

	"darely/internal/models"
	"darely/internal/repository"

	"gorm.io/gorm"
)

// dbSettlementStore binds SettlementStore to one gorm transaction.
type dbSettlementStore struct {
	tx *gorm.DB
}

func (s *dbSettlementStore) DebitWallet(userID uint, amountCents int64) error {
	err := repository.DebitWalletTx(s.tx, userID, amountCents)
	if err == repository.ErrInsufficientBalance {
		return ErrInsufficientFunds
	}
	return err
}

func (s *dbSettlementStore) CreditWallet(userID uint, amountCents int64) error {
	return repository.CreditWalletTx(s.tx, userID, amountCents)
}

func (s *dbSettlementStore) CreateRequest(req *models.InteractionRequest) error {
	return s.tx.Create(req).Error
}

func (s *dbSettlementStore) CreateQueueEntry(entry *models.QueueEntry) error {
	return s.tx.Create(entry).Error
}

func (s *dbSettlementStore) CreateLedgerEntry(txn *models.WalletTransaction) error {
	return s.tx.Create(txn).Error
}

// DBUnitOfWork executes settlement steps inside a single database
// transaction.
type DBUnitOfWork struct {
	db *gorm.DB
}

func NewDBUnitOfWork(db *gorm.DB) *DBUnitOfWork {
	return &DBUnitOfWork{db: db}
}

func (u *DBUnitOfWork) Do(ctx context.Context, fn func(SettlementStore) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&dbSettlementStore{tx: tx})
	})
}
