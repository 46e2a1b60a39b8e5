package models_test

import (
	"fmt"
	"testing"

	"github.com/motorplaza/motorplaza-backend/internal/models"
	"github.com/motorplaza/motorplaza-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotoCapAtTen(t *testing.T) {
	db := testutil.NewDB(t)

	car := validCar()
	require.NoError(t, db.Create(&car).Error)

	for i := 0; i < models.MaxPhotosPerCar; i++ {
		photo := models.CarPhoto{
			CarID:    car.ID,
			Filename: fmt.Sprintf("photo_%d.jpg", i),
			URL:      fmt.Sprintf("/uploads/photo_%d.jpg", i),
			Position: i,
		}
		require.NoError(t, db.Create(&photo).Error, "photo %d should be accepted", i+1)
	}

	eleventh := models.CarPhoto{
		CarID:    car.ID,
		Filename: "photo_10.jpg",
		URL:      "/uploads/photo_10.jpg",
	}
	err := db.Create(&eleventh).Error
	require.Error(t, err)
	v, ok := models.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, v.Fields, "photos")

	var count int64
	require.NoError(t, db.Model(&models.CarPhoto{}).Where("car_id = ?", car.ID).Count(&count).Error)
	assert.EqualValues(t, models.MaxPhotosPerCar, count)
}

func TestPhotoUpdateDoesNotCountItself(t *testing.T) {
	db := testutil.NewDB(t)

	car := validCar()
	require.NoError(t, db.Create(&car).Error)

	var last models.CarPhoto
	for i := 0; i < models.MaxPhotosPerCar; i++ {
		last = models.CarPhoto{
			CarID:    car.ID,
			Filename: fmt.Sprintf("photo_%d.jpg", i),
			URL:      fmt.Sprintf("/uploads/photo_%d.jpg", i),
			Position: i,
		}
		require.NoError(t, db.Create(&last).Error)
	}

	// Reordering an existing photo at the cap must still be possible.
	last.Position = 0
	assert.NoError(t, db.Save(&last).Error)
}

func TestPhotoRequiresCar(t *testing.T) {
	db := testutil.NewDB(t)

	photo := models.CarPhoto{Filename: "orphan.jpg", URL: "/uploads/orphan.jpg"}
	err := db.Create(&photo).Error
	require.Error(t, err)
	v, ok := models.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, v.Fields, "car_id")
}

func TestPhotoNegativePositionRejected(t *testing.T) {
	db := testutil.NewDB(t)

	car := validCar()
	require.NoError(t, db.Create(&car).Error)

	photo := models.CarPhoto{CarID: car.ID, Filename: "p.jpg", URL: "/uploads/p.jpg", Position: -1}
	err := db.Create(&photo).Error
	require.Error(t, err)
	_, ok := models.AsValidation(err)
	assert.True(t, ok)
}
