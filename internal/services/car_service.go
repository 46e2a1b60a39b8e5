package services

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/motorplaza/motorplaza-backend/internal/models"
	"github.com/motorplaza/motorplaza-backend/internal/storage"
	"gorm.io/gorm"
)

// CarService performs the administrative listing mutations. Every write
// passes through the Car persistence guard (BeforeSave hook).
type CarService struct {
	db    *gorm.DB
	store storage.Storage
}

func NewCarService(db *gorm.DB, store storage.Storage) *CarService {
	return &CarService{db: db, store: store}
}

func (s *CarService) Create(car *models.Car) error {
	return s.db.Create(car).Error
}

// Update saves the full car record; validation and plate normalization run
// in the hook before anything is written.
func (s *CarService) Update(car *models.Car) error {
	return s.db.Save(car).Error
}

// Find returns a car regardless of its active flag (admin view).
func (s *CarService) Find(id uuid.UUID) (*models.Car, error) {
	var car models.Car
	err := s.db.
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order(models.PhotoDisplayOrder)
		}).
		First(&car, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &car, nil
}

// SetActive flips visibility only; the persistence guard is skipped
// because it would validate the empty model a column update carries.
func (s *CarService) SetActive(id uuid.UUID, active bool) error {
	result := s.db.Session(&gorm.Session{SkipHooks: true}).
		Model(&models.Car{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the car and all its photos in one transaction: the car
// owns its gallery, so the cascade is explicit here rather than left to a
// database constraint. Stored photo files are removed best-effort.
func (s *CarService) Delete(id uuid.UUID) error {
	var photos []models.CarPhoto

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var car models.Car
		if err := tx.First(&car, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("car_id = ?", id).Find(&photos).Error; err != nil {
			return err
		}
		if err := tx.Where("car_id = ?", id).Delete(&models.CarPhoto{}).Error; err != nil {
			return err
		}
		return tx.Delete(&car).Error
	})
	if err != nil {
		return err
	}

	for _, photo := range photos {
		if err := s.store.Remove(photo.URL); err != nil {
			slog.Error("failed to remove photo file", "url", photo.URL, "error", err)
		}
	}
	return nil
}
