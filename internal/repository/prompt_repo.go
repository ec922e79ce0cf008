package repository

import (
	"darely/internal/models"

	"gorm.io/gorm"
)

type PromptRepository struct {
	db *gorm.DB
}

func NewPromptRepository(db *gorm.DB) *PromptRepository {
	return &PromptRepository{db: db}
}

func (r *PromptRepository) Create(p *models.DarePrompt) error {
	return r.db.Create(p).Error
}

func (r *PromptRepository) List(kind, tier string, limit, offset int) ([]models.DarePrompt, error) {
	var list []models.DarePrompt
	q := r.db.Model(&models.DarePrompt{})
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	if tier != "" {
		q = q.Where("tier = ?", tier)
	}
	err := q.Order("id ASC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

// Random picks one active prompt for the kind+tier.
func (r *PromptRepository) Random(kind, tier string) (*models.DarePrompt, error) {
	var p models.DarePrompt
	err := r.db.Where("kind = ? AND tier = ? AND is_active = ?", kind, tier, true).
		Order("RAND()").First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PromptRepository) Update(p *models.DarePrompt) error {
	return r.db.Save(p).Error
}

func (r *PromptRepository) Delete(id uint) error {
	return r.db.Delete(&models.DarePrompt{}, id).Error
}
