package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PhotoDisplayOrder is the canonical gallery ordering.
const PhotoDisplayOrder = "position ASC, id ASC"

// CarPhoto is one image of a listing's gallery. A car owns its photos:
// deleting the car deletes them.
type CarPhoto struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CarID      uuid.UUID `gorm:"type:uuid;not null;index" json:"car_id"`
	Filename   string    `gorm:"size:255;not null" json:"filename"`
	URL        string    `gorm:"size:512;not null" json:"url"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (p *CarPhoto) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeSave enforces the gallery cap. The count excludes the photo's own
// id so updating an existing photo never trips the limit.
//
// The check-then-insert is not guarded by a lock on the parent car, so two
// attachments racing at the limit can overshoot it slightly. Known
// limitation, kept as-is.
func (p *CarPhoto) BeforeSave(tx *gorm.DB) error {
	if p.CarID == uuid.Nil {
		return NewValidationError("car_id", "photo must belong to a car")
	}
	if p.Position < 0 {
		return NewValidationError("position", "position cannot be negative")
	}

	var count int64
	if err := tx.Model(&CarPhoto{}).
		Where("car_id = ? AND id <> ?", p.CarID, p.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count >= MaxPhotosPerCar {
		return NewValidationError("photos", "a listing can have at most 10 photos")
	}
	return nil
}
