package seed

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/motorplaza/motorplaza-backend/internal/models"
	"github.com/motorplaza/motorplaza-backend/internal/storage"
	"gorm.io/gorm"
)

// Pexels URLs (free license). Swap in your own sources if preferred.
var demoPhotoSources = map[string][]string{
	"1234ABC": {
		"https://images.pexels.com/photos/210019/pexels-photo-210019.jpeg",
		"https://images.pexels.com/photos/170811/pexels-photo-170811.jpeg",
		"https://images.pexels.com/photos/120049/pexels-photo-120049.jpeg",
	},
	"5678BCD": {
		"https://images.pexels.com/photos/1402787/pexels-photo-1402787.jpeg",
		"https://images.pexels.com/photos/1402785/pexels-photo-1402785.jpeg",
		"https://images.pexels.com/photos/2100190/pexels-photo-2100190.jpeg",
	},
	"9101CDE": {
		"https://images.pexels.com/photos/358070/pexels-photo-358070.jpeg",
		"https://images.pexels.com/photos/2100191/pexels-photo-2100191.jpeg",
		"https://images.pexels.com/photos/1708119/pexels-photo-1708119.jpeg",
	},
	"2345DEF": {
		"https://images.pexels.com/photos/575821/pexels-photo-575821.jpeg",
		"https://images.pexels.com/photos/1149831/pexels-photo-1149831.jpeg",
		"https://images.pexels.com/photos/1149833/pexels-photo-1149833.jpeg",
	},
	"6789EFG": {
		"https://images.pexels.com/photos/1545743/pexels-photo-1545743.jpeg",
		"https://images.pexels.com/photos/2100193/pexels-photo-2100193.jpeg",
		"https://images.pexels.com/photos/1200491/pexels-photo-1200491.jpeg",
	},
	"3456FGH": {
		"https://images.pexels.com/photos/799443/pexels-photo-799443.jpeg",
		"https://images.pexels.com/photos/123335/pexels-photo-123335.jpeg",
		"https://images.pexels.com/photos/112460/pexels-photo-112460.jpeg",
	},
	"7890GHI": {
		"https://images.pexels.com/photos/2100194/pexels-photo-2100194.jpeg",
		"https://images.pexels.com/photos/2100195/pexels-photo-2100195.jpeg",
		"https://images.pexels.com/photos/376498/pexels-photo-376498.jpeg",
	},
	"4567HIJ": {
		"https://images.pexels.com/photos/2100196/pexels-photo-2100196.jpeg",
		"https://images.pexels.com/photos/266621/pexels-photo-266621.jpeg",
		"https://images.pexels.com/photos/386009/pexels-photo-386009.jpeg",
	},
	"8901IJK": {
		"https://images.pexels.com/photos/2100197/pexels-photo-2100197.jpeg",
		"https://images.pexels.com/photos/2100198/pexels-photo-2100198.jpeg",
		"https://images.pexels.com/photos/1805053/pexels-photo-1805053.jpeg",
	},
	"5678JKL": {
		"https://images.pexels.com/photos/2100199/pexels-photo-2100199.jpeg",
		"https://images.pexels.com/photos/1149834/pexels-photo-1149834.jpeg",
		"https://images.pexels.com/photos/1149058/pexels-photo-1149058.jpeg",
	},
}

var photoClient = &http.Client{Timeout: 30 * time.Second}

// Photos downloads the curated demo photo sets and attaches them to the
// matching seeded listings. With force, existing galleries are replaced;
// otherwise cars that already have enough photos are skipped. Returns the
// number of photos downloaded.
func Photos(db *gorm.DB, store storage.Storage, force bool) (int, error) {
	total := 0

	for plate, urls := range demoPhotoSources {
		var car models.Car
		if err := db.Where("license_plate = ?", plate).First(&car).Error; err != nil {
			slog.Warn("no listing for plate, skipping", "plate", plate)
			continue
		}

		if force {
			if err := db.Where("car_id = ?", car.ID).Delete(&models.CarPhoto{}).Error; err != nil {
				return total, err
			}
		} else {
			var existing int64
			if err := db.Model(&models.CarPhoto{}).Where("car_id = ?", car.ID).Count(&existing).Error; err != nil {
				return total, err
			}
			if existing >= int64(len(urls)) {
				slog.Info("listing already has photos, use --force to replace", "plate", plate, "photos", existing)
				continue
			}
		}

		for position, url := range urls {
			if err := downloadPhoto(db, store, &car, url, position); err != nil {
				slog.Error("failed to download photo", "url", url, "plate", plate, "error", err)
				continue
			}
			total++
		}
	}
	return total, nil
}

func downloadPhoto(db *gorm.DB, store storage.Storage, car *models.Car, url string, position int) error {
	resp, err := photoClient.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	filename := fmt.Sprintf("%s_%d.jpg", strings.ToLower(car.LicensePlate), position)
	publicURL, err := store.Save(filename, resp.Body)
	if err != nil {
		return err
	}

	photo := models.CarPhoto{
		CarID:    car.ID,
		Filename: filename,
		URL:      publicURL,
		Position: position,
	}
	if err := db.Create(&photo).Error; err != nil {
		if removeErr := store.Remove(publicURL); removeErr != nil {
			slog.Error("failed to clean up photo file", "url", publicURL, "error", removeErr)
		}
		return err
	}
	return nil
}
