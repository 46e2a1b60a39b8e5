package dto

// CreateCarRequest is the admin payload for creating or replacing a
// listing. The model-level persistence guard re-checks everything; these
// tags catch malformed requests before they reach the store.
type CreateCarRequest struct {
	LicensePlate string  `json:"license_plate" validate:"required,min=4,max=10"`
	Brand        string  `json:"brand" validate:"required,max=50"`
	ModelName    string  `json:"model_name" validate:"required,max=80"`
	Kilometers   int     `json:"kilometers" validate:"gte=0"`
	Year         int     `json:"year" validate:"required"`
	Price        float64 `json:"price" validate:"gte=0"`
	Description  string  `json:"description"`
	IsActive     *bool   `json:"is_active"`
}

type SetActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// FilterValues echoes the criteria a search was rendered with, so the
// client can repopulate its filter controls.
type FilterValues struct {
	Brand   string `json:"brand"`
	Model   string `json:"model"`
	YearMin string `json:"year_min"`
	YearMax string `json:"year_max"`
	KmMax   string `json:"km_max"`
	Query   string `json:"q"`
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}
