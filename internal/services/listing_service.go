package services

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/motorplaza/motorplaza-backend/internal/models"
	"gorm.io/gorm"
)

// PageSize is the fixed number of listings per search page.
const PageSize = 12

// SearchFilters holds the optional criteria of a listing search. Nil or
// zero-valued fields impose no constraint.
type SearchFilters struct {
	Brand   string
	Model   string
	YearMin *int
	YearMax *int
	KmMax   *int
	Query   string
	Page    int
}

// ParseSearchQuery builds SearchFilters from raw query parameters.
// Numeric values that fail to parse are skipped, not rejected: a malformed
// year_min behaves exactly like an omitted one. Deliberate leniency.
func ParseSearchQuery(params map[string]string) SearchFilters {
	f := SearchFilters{
		Brand: strings.TrimSpace(params["brand"]),
		Model: strings.TrimSpace(params["model"]),
		Query: strings.TrimSpace(params["q"]),
		Page:  1,
	}
	f.YearMin = parseIntFilter(params["year_min"])
	f.YearMax = parseIntFilter(params["year_max"])
	f.KmMax = parseIntFilter(params["km_max"])
	if page := parseIntFilter(params["page"]); page != nil && *page > 0 {
		f.Page = *page
	}
	return f
}

func parseIntFilter(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// SearchResult is one page of matching listings plus pagination totals.
type SearchResult struct {
	Cars       []models.Car
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// ListingService answers the public listing queries. Read-only.
type ListingService struct {
	db *gorm.DB
}

func NewListingService(db *gorm.DB) *ListingService {
	return &ListingService{db: db}
}

// Search returns the page of active listings matching every supplied
// criterion, newest first. Inactive listings are never visible through
// this path. Out-of-range pages come back empty, never as an error.
func (s *ListingService) Search(f SearchFilters) (*SearchResult, error) {
	query := s.db.Model(&models.Car{}).Where("is_active = ?", true)

	if f.Brand != "" {
		query = query.Where("LOWER(brand) = ?", strings.ToLower(f.Brand))
	}
	if f.Model != "" {
		query = query.Where("LOWER(model_name) LIKE ?", contains(f.Model))
	}
	if f.YearMin != nil {
		query = query.Where("year >= ?", *f.YearMin)
	}
	if f.YearMax != nil {
		query = query.Where("year <= ?", *f.YearMax)
	}
	if f.KmMax != nil {
		query = query.Where("kilometers <= ?", *f.KmMax)
	}
	if f.Query != "" {
		like := contains(f.Query)
		query = query.Where(
			"LOWER(brand) LIKE ? OR LOWER(model_name) LIKE ? OR LOWER(license_plate) LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	totalPages := int((total + PageSize - 1) / PageSize)

	var cars []models.Car
	err := query.
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order(models.PhotoDisplayOrder)
		}).
		Order("created_at DESC").
		Limit(PageSize).
		Offset((page - 1) * PageSize).
		Find(&cars).Error
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Cars:       cars,
		Total:      total,
		Page:       page,
		PageSize:   PageSize,
		TotalPages: totalPages,
	}, nil
}

// Get returns one active listing with its photos in display order.
func (s *ListingService) Get(id uuid.UUID) (*models.Car, error) {
	var car models.Car
	err := s.db.
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order(models.PhotoDisplayOrder)
		}).
		Where("is_active = ?", true).
		First(&car, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &car, nil
}

// Brands lists the distinct brands among active listings, alphabetically.
// Projection for the filter controls, not a filter itself.
func (s *ListingService) Brands() ([]string, error) {
	var brands []string
	err := s.db.Model(&models.Car{}).
		Where("is_active = ?", true).
		Distinct("brand").
		Order("brand").
		Pluck("brand", &brands).Error
	return brands, err
}

// Years lists the distinct years among active listings, ascending.
func (s *ListingService) Years() ([]int, error) {
	var years []int
	err := s.db.Model(&models.Car{}).
		Where("is_active = ?", true).
		Distinct("year").
		Order("year").
		Pluck("year", &years).Error
	return years, err
}

func contains(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
