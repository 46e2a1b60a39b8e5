package seed

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/motorplaza/motorplaza-backend/internal/models"
	"github.com/motorplaza/motorplaza-backend/internal/storage"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SampleCar is one demo listing inserted by the seeder.
type SampleCar struct {
	LicensePlate string
	Brand        string
	ModelName    string
	Kilometers   int
	Year         int
	Price        float64
	Description  string
}

var SampleCars = []SampleCar{
	{"1234ABC", "Seat", "Ibiza FR", 45000, 2019, 13500.00, "Compacto ágil con mantenimiento al día y paquete FR."},
	{"5678BCD", "Audi", "A3 Sportback", 52000, 2018, 19800.00, "Acabado S-Line, historial completo Audi y un único propietario."},
	{"9101CDE", "BMW", "Serie 1 118d", 61000, 2020, 22800.00, "Motor eficiente y paquete M interior, listo para viajar."},
	{"2345DEF", "Mercedes", "Clase A 200", 28000, 2021, 31500.00, "Tecnología MBUX y asistencias completas de conducción."},
	{"6789EFG", "Volkswagen", "Golf GTI", 40000, 2019, 25500.00, "Edición Performance con llantas 19'' y interior en cuero."},
	{"3456FGH", "Tesla", "Model 3", 30000, 2021, 35900.00, "Autopilot, carga rápida y actualizaciones remotas al día."},
	{"7890GHI", "Toyota", "Corolla Hybrid", 35000, 2020, 18900.00, "Híbrido fiable con consumo contenido en ciudad."},
	{"4567HIJ", "Renault", "Clio Zen", 25000, 2021, 14200.00, "Urbano con pantalla táctil y sensores de aparcamiento."},
	{"8901IJK", "Peugeot", "3008 GT", 48000, 2019, 24900.00, "SUV familiar con grip control y techo panorámico."},
	{"5678JKL", "Kia", "Sportage", 27000, 2021, 21500.00, "Garantía oficial vigente y conectividad completa."},
}

var placeholderColors = []color.RGBA{
	{0x0f, 0x17, 0x2a, 0xff},
	{0x14, 0x53, 0x88, 0xff},
	{0xef, 0x44, 0x44, 0xff},
	{0x22, 0xc5, 0x5e, 0xff},
	{0xf9, 0x73, 0x16, 0xff},
}

const (
	seedAdminEmail    = "admin_seed@example.com"
	seedAdminPassword = "admin123"
)

// Listings inserts the sample cars idempotently (get-or-create by plate)
// and attaches 2-4 generated placeholder photos to each new listing.
// Returns the number of listings created.
func Listings(db *gorm.DB, store storage.Storage) (int, error) {
	admin, err := ensureSeedAdmin(db)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, sample := range SampleCars {
		var existing models.Car
		err := db.Where("license_plate = ?", sample.LicensePlate).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return created, err
		}

		car := models.Car{
			LicensePlate: sample.LicensePlate,
			Brand:        sample.Brand,
			ModelName:    sample.ModelName,
			Kilometers:   sample.Kilometers,
			Year:         sample.Year,
			Price:        sample.Price,
			Description:  sample.Description,
			IsActive:     true,
			CreatedByID:  &admin.ID,
		}
		if err := db.Create(&car).Error; err != nil {
			return created, fmt.Errorf("failed to create %s: %w", sample.LicensePlate, err)
		}
		slog.Info("listing created", "plate", car.LicensePlate, "brand", car.Brand)
		created++

		totalPhotos := 2 + rand.Intn(3)
		for idx := 0; idx < totalPhotos; idx++ {
			if err := attachPlaceholder(db, store, &car, idx); err != nil {
				slog.Error("failed to attach placeholder photo", "plate", car.LicensePlate, "error", err)
			}
		}
	}
	return created, nil
}

func ensureSeedAdmin(db *gorm.DB) (*models.User, error) {
	var admin models.User
	if err := db.Where("role = ?", models.RoleAdmin).First(&admin).Error; err == nil {
		return &admin, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin = models.User{
		ID:       uuid.New(),
		Email:    seedAdminEmail,
		Password: string(hash),
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create seed admin: %w", err)
	}
	slog.Info("seed admin created", "email", seedAdminEmail)
	return &admin, nil
}

func attachPlaceholder(db *gorm.DB, store storage.Storage, car *models.Car, position int) error {
	img := placeholderImage(placeholderColors[rand.Intn(len(placeholderColors))])
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return err
	}

	filename := fmt.Sprintf("%s_%d.jpg", strings.ToLower(car.LicensePlate), position)
	url, err := store.Save(filename, &buf)
	if err != nil {
		return err
	}

	photo := models.CarPhoto{
		CarID:    car.ID,
		Filename: filename,
		URL:      url,
		Position: position,
	}
	return db.Create(&photo).Error
}

func placeholderImage(c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 1200, 800))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}
