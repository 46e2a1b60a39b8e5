package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxPhotosPerCar caps the photo gallery of a single listing.
const MaxPhotosPerCar = 10

// MinYear is the oldest accepted manufacturing year.
const MinYear = 1970

var licensePlateRe = regexp.MustCompile(`^[A-Z0-9-]{4,10}$`)

// Car is a listing published by administrators and browsed by visitors.
type Car struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	LicensePlate string     `gorm:"size:10;not null;uniqueIndex" json:"license_plate"`
	Brand        string     `gorm:"size:50;not null;index" json:"brand"`
	ModelName    string     `gorm:"size:80;not null" json:"model_name"`
	Kilometers   int        `gorm:"not null" json:"kilometers"`
	Year         int        `gorm:"not null" json:"year"`
	Price        float64    `gorm:"type:numeric(10,2);not null;default:0" json:"price"`
	Description  string     `gorm:"type:text" json:"description"`
	IsActive     bool       `gorm:"not null;index" json:"is_active"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	CreatedByID  *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedBy    *User      `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"-"`
	Photos       []CarPhoto `gorm:"foreignKey:CarID;constraint:OnDelete:CASCADE" json:"photos,omitempty"`
}

func (c *Car) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// BeforeSave is the persistence guard: it normalizes the license plate and
// runs full validation before any insert or update. A failure aborts the
// write with a ValidationError naming the offending fields.
func (c *Car) BeforeSave(tx *gorm.DB) error {
	c.LicensePlate = strings.ToUpper(strings.TrimSpace(c.LicensePlate))

	if err := c.Validate(); err != nil {
		return err
	}

	// Uniqueness probe; the DB unique index remains the backstop.
	var count int64
	if err := tx.Model(&Car{}).
		Where("license_plate = ? AND id <> ?", c.LicensePlate, c.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return NewValidationError("license_plate", "a listing with this license plate already exists")
	}
	return nil
}

// Validate checks field constraints without touching the database.
func (c *Car) Validate() error {
	fields := map[string]string{}

	if !licensePlateRe.MatchString(c.LicensePlate) {
		fields["license_plate"] = "must be 4-10 characters using letters, digits or hyphens"
	}
	if c.Brand == "" {
		fields["brand"] = "brand is required"
	}
	if c.ModelName == "" {
		fields["model_name"] = "model name is required"
	}
	if c.Kilometers < 0 {
		fields["kilometers"] = "kilometers cannot be negative"
	}
	maxYear := time.Now().Year() + 1
	if c.Year < MinYear || c.Year > maxYear {
		fields["year"] = "year must be between 1970 and next year"
	}
	if c.Price < 0 {
		fields["price"] = "price cannot be negative"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// CoverPhoto returns the first photo in display order, or nil when the
// listing has none. Photos must have been loaded with PhotoDisplayOrder.
func (c *Car) CoverPhoto() *CarPhoto {
	if len(c.Photos) == 0 {
		return nil
	}
	return &c.Photos[0]
}

func (c *Car) Title() string {
	return c.Brand + " " + c.ModelName
}
