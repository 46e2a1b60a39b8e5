package services

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/motorplaza/motorplaza-backend/internal/models"
	"github.com/motorplaza/motorplaza-backend/internal/storage"
	"gorm.io/gorm"
)

// PhotoService attaches and removes gallery photos. The 10-photo cap is
// enforced by the CarPhoto save hook; a failed insert rolls the stored
// file back out.
type PhotoService struct {
	db    *gorm.DB
	store storage.Storage
}

func NewPhotoService(db *gorm.DB, store storage.Storage) *PhotoService {
	return &PhotoService{db: db, store: store}
}

// Attach stores the image blob and persists the photo record. Position is
// kept exactly as supplied; there is no renumbering or gap-filling.
func (s *PhotoService) Attach(carID uuid.UUID, filename string, r io.Reader, position int) (*models.CarPhoto, error) {
	var car models.Car
	if err := s.db.First(&car, "id = ?", carID).Error; err != nil {
		return nil, err
	}

	url, err := s.store.Save(filename, r)
	if err != nil {
		return nil, err
	}

	photo := &models.CarPhoto{
		CarID:    carID,
		Filename: filename,
		URL:      url,
		Position: position,
	}
	if err := s.db.Create(photo).Error; err != nil {
		if removeErr := s.store.Remove(url); removeErr != nil {
			slog.Error("failed to clean up rejected photo file", "url", url, "error", removeErr)
		}
		return nil, err
	}
	return photo, nil
}

func (s *PhotoService) Delete(photoID uuid.UUID) error {
	var photo models.CarPhoto
	if err := s.db.First(&photo, "id = ?", photoID).Error; err != nil {
		return err
	}
	if err := s.db.Delete(&photo).Error; err != nil {
		return err
	}
	if err := s.store.Remove(photo.URL); err != nil {
		slog.Error("failed to remove photo file", "url", photo.URL, "error", err)
	}
	return nil
}

// DeleteAllForCar wipes a car's gallery (used by the demo-photo refresh).
func (s *PhotoService) DeleteAllForCar(carID uuid.UUID) error {
	var photos []models.CarPhoto
	if err := s.db.Where("car_id = ?", carID).Find(&photos).Error; err != nil {
		return err
	}
	if err := s.db.Where("car_id = ?", carID).Delete(&models.CarPhoto{}).Error; err != nil {
		return err
	}
	for _, photo := range photos {
		if err := s.store.Remove(photo.URL); err != nil {
			slog.Error("failed to remove photo file", "url", photo.URL, "error", err)
		}
	}
	return nil
}
