package repository

import (
	"time"

	"darely/internal/domain"
	"darely/internal/models"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(room *models.Room) error {
	return r.db.Create(room).Error
}

func (r *RoomRepository) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// ResolveHost returns the host user ID for a live room.
func (r *RoomRepository) ResolveHost(roomID uint) (uint, error) {
	var room models.Room
	err := r.db.Select("id", "host_id", "status").First(&room, roomID).Error
	if err != nil {
		return 0, err
	}
	if room.Status != domain.RoomStatusLive {
		return 0, gorm.ErrRecordNotFound
	}
	return room.HostID, nil
}

// GetLiveByHostID returns the host's current live room, if any.
func (r *RoomRepository) GetLiveByHostID(hostID uint) (*models.Room, error) {
	var room models.Room
	err := r.db.Where("host_id = ? AND status = ?", hostID, domain.RoomStatusLive).First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *RoomRepository) ListLive(limit, offset int) ([]models.Room, error) {
	var list []models.Room
	err := r.db.Where("status = ?", domain.RoomStatusLive).
		Order("started_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *RoomRepository) End(roomID, hostID uint) error {
	now := time.Now()
	res := r.db.Model(&models.Room{}).
		Where("id = ? AND host_id = ? AND status = ?", roomID, hostID, domain.RoomStatusLive).
		Updates(map[string]interface{}{"status": domain.RoomStatusEnded, "ended_at": now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
