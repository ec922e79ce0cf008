package repository

import (
	"darely/internal/models"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(p *models.Payment) error {
	return r.db.Create(p).Error
}

func (r *PaymentRepository) GetByID(id uint) (*models.Payment, error) {
	var p models.Payment
	err := r.db.First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByProviderRef(ref string) (*models.Payment, error) {
	var p models.Payment
	err := r.db.Where("provider_ref = ?", ref).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) Update(p *models.Payment) error {
	return r.db.Save(p).Error
}

// CompleteAndCredit marks a pending payment COMPLETED and credits the wallet
// in one transaction. The status guard in the WHERE makes webhook replays
// no-ops instead of double credits.
func (r *PaymentRepository) CompleteAndCredit(ref string, walletTxType string) (*models.Payment, error) {
	var p models.Payment
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("provider_ref = ?", ref).First(&p).Error; err != nil {
			return err
		}
		res := tx.Model(&models.Payment{}).
			Where("id = ? AND status = ?", p.ID, "PENDING").
			Updates(map[string]interface{}{"status": "COMPLETED", "completed_at": gorm.Expr("NOW()")})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := CreditWalletTx(tx, p.UserID, p.AmountCents); err != nil {
			return err
		}
		return tx.Create(&models.WalletTransaction{
			UserID:      p.UserID,
			AmountCents: p.AmountCents,
			Type:        walletTxType,
			Reference:   p.ProviderRef,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}
