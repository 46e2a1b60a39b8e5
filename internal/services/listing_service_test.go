package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/motorplaza/motorplaza-backend/internal/models"
	"github.com/motorplaza/motorplaza-backend/internal/services"
	"github.com/motorplaza/motorplaza-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createCar(t *testing.T, db *gorm.DB, plate, brand, model string, year, km int, active bool, createdAt time.Time) models.Car {
	t.Helper()
	car := models.Car{
		LicensePlate: plate,
		Brand:        brand,
		ModelName:    model,
		Kilometers:   km,
		Year:         year,
		Price:        15000,
		IsActive:     active,
		CreatedAt:    createdAt,
	}
	require.NoError(t, db.Create(&car).Error)
	return car
}

func plates(cars []models.Car) []string {
	out := make([]string, len(cars))
	for i, c := range cars {
		out[i] = c.LicensePlate
	}
	return out
}

func TestSearchExcludesInactive(t *testing.T) {
	db := testutil.NewDB(t)
	svc := services.NewListingService(db)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 10; i++ {
		createCar(t, db, fmt.Sprintf("ACT%d-X", i), "Seat", "Ibiza", 2019, 40000, true, base.Add(time.Duration(i)*time.Hour))
	}
	for i := 0; i < 3; i++ {
		createCar(t, db, fmt.Sprintf("OFF%d-X", i), "Audi", "A3", 2021, 20000, false, base.Add(time.Duration(100+i)*time.Hour))
	}

	result, err := svc.Search(services.SearchFilters{Page: 1})
	require.NoError(t, err)

	assert.EqualValues(t, 10, result.Total)
	assert.Equal(t, 1, result.TotalPages)
	require.Len(t, result.Cars, 10)

	// Newest first.
	assert.Equal(t, "ACT9-X", result.Cars[0].LicensePlate)
	assert.Equal(t, "ACT0-X", result.Cars[9].LicensePlate)
	for _, car := range result.Cars {
		assert.True(t, car.IsActive)
	}
}

func TestSearchCriteriaCompose(t *testing.T) {
	db := testutil.NewDB(t)
	svc := services.NewListingService(db)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	createCar(t, db, "1111AAA", "Seat", "Ibiza FR", 2019, 45000, true, base)
	createCar(t, db, "2222BBB", "Seat", "Leon", 2010, 80000, true, base.Add(time.Hour))
	createCar(t, db, "3333CCC", "Audi", "A3 Sportback", 2019, 30000, true, base.Add(2*time.Hour))

	yearMin := 2015
	kmMax := 50000
	result, err := svc.Search(services.SearchFilters{
		Brand:   "seat",
		YearMin: &yearMin,
		KmMax:   &kmMax,
		Page:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1111AAA"}, plates(result.Cars))
}

func TestSearchBrandExactCaseInsensitive(t *testing.T) {
	db := testutil.NewDB(t)
	svc := services.NewListingService(db)
	now := time.Now().UTC()

	createCar(t, db, "1111AAA", "Seat", "Ibiza", 2019, 40000, true, now)
	createCar(t, db, "2222BBB", "Seattle Motors", "Cruiser", 2019, 40000, true, now)

	result, err := svc.Search(services.SearchFilters{Brand: "SEAT", Page: 1})
	require.NoError(t, err)
	// Exact match, not substring: "Seattle Motors" must not leak in.
	assert.Equal(t, []string{"1111AAA"}, plates(result.Cars))
}

func TestSearchModelSubstring(t *testing.T) {
	db := testutil.NewDB(t)
	svc := services.NewListingService(db)
	now := time.Now().UTC()

	createCar(t, db, "1111AAA", "Seat", "Ibiza FR", 2019, 40000, true, now)
	createCar(t, db, "2222BBB", "Audi", "A3 Sportback", 2019, 40000, true, now)

	result, err := svc.Search(services.SearchFilters{Model: "ibiza", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"1111AAA"}, plates(result.Cars))
}

func TestSearchFreeText(t *testing.T) {
	db := testutil.NewDB(t)
	svc := services.NewListingService(db)
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	createCar(t, db, "9876ZZZ", "Seat", "Ibiza", 2019, 40000, true, base)
	createCar(t, db, "1234ABC", "Audi", "A3", 2021, 20000, true, base.Add(time.Hour))

	// Matches brand, model name or license plate.
	result, err := svc.Search(services.SearchFilters{Query: "zzz", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"9876ZZZ"}, plates(result.Cars))

	result, err = svc.Search(services.SearchFilters{Query: "audi", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"1234ABC"}, plates(result.Cars))
}

func TestMalformedNumericFilterEqualsOmitted(t *testing.T) {
	db := testutil.NewDB(t)
	svc := services.NewListingService(db)
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	createCar(t, db, "1111AAA", "Seat", "Ibiza", 2010, 90000, true, base)
	createCar(t, db, "2222BBB", "Seat", "Leon", 2021, 10000, true, base.Add(time.Hour))

	malformed := services.ParseSearchQuery(map[string]string{"year_min": "abc", "km_max": "12k"})
	omitted := services.ParseSearchQuery(map[string]string{})

	assert.Nil(t, malformed.YearMin)
	assert.Nil(t, malformed.KmMax)

	got, err := svc.Search(malformed)
	require.NoError(t, err)
	want, err := svc.Search(omitted)
	require.NoError(t, err)
	assert.Equal(t, plates(want.Cars), plates(got.Cars))
	assert.Equal(t, want.Total, got.Total)
}

func TestParseSearchQuery(t *testing.T) {
	f := services.ParseSearchQuery(map[string]string{
		"brand":    " Seat ",
		"model":    "Ibiza",
		"year_min": "2015",
		"year_max": "2021",
		"km_max":   "50000",
		"q":        "fr",
		"page":     "3",
	})

	assert.Equal(t, "Seat", f.Brand)
	assert.Equal(t, "Ibiza", f.Model)
	require.NotNil(t, f.YearMin)
	assert.Equal(t, 2015, *f.YearMin)
	require.NotNil(t, f.YearMax)
	assert.Equal(t, 2021, *f.YearMax)
	require.NotNil(t, f.KmMax)
	assert.Equal(t, 50000, *f.KmMax)
	assert.Equal(t, "fr", f.Query)
	assert.Equal(t, 3, f.Page)

	// Garbage page falls back to 1.
	f = services.ParseSearchQuery(map[string]string{"page": "x"})
	assert.Equal(t, 1, f.Page)
}

func TestSearchPagination(t *testing.T) {
	db := testutil.NewDB(t)
	svc := services.NewListingService(db)
	base := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 15; i++ {
		createCar(t, db, fmt.Sprintf("PAG%d-Y", i), "Seat", "Ibiza", 2019, 40000, true, base.Add(time.Duration(i)*time.Minute))
	}

	page1, err := svc.Search(services.SearchFilters{Page: 1})
	require.NoError(t, err)
	assert.Len(t, page1.Cars, services.PageSize)
	assert.EqualValues(t, 15, page1.Total)
	assert.Equal(t, 2, page1.TotalPages)

	page2, err := svc.Search(services.SearchFilters{Page: 2})
	require.NoError(t, err)
	assert.Len(t, page2.Cars, 3)

	// Out-of-range pages are empty, never an error.
	page99, err := svc.Search(services.SearchFilters{Page: 99})
	require.NoError(t, err)
	assert.Empty(t, page99.Cars)
	assert.EqualValues(t, 15, page99.Total)

	// Page 0 and negatives clamp to the first page.
	page0, err := svc.Search(services.SearchFilters{Page: 0})
	require.NoError(t, err)
	assert.Len(t, page0.Cars, services.PageSize)
	assert.Equal(t, 1, page0.Page)
}

func TestFacetsExcludeInactive(t *testing.T) {
	db := testutil.NewDB(t)
	svc := services.NewListingService(db)
	now := time.Now().UTC()

	createCar(t, db, "1111AAA", "Seat", "Ibiza", 2019, 40000, true, now)
	createCar(t, db, "2222BBB", "Audi", "A3", 2021, 20000, true, now)
	createCar(t, db, "3333CCC", "BMW", "Serie 1", 2020, 60000, false, now)

	brands, err := svc.Brands()
	require.NoError(t, err)
	assert.Equal(t, []string{"Audi", "Seat"}, brands)

	years, err := svc.Years()
	require.NoError(t, err)
	assert.Equal(t, []int{2019, 2021}, years)
}

func TestGetOnlyReturnsActive(t *testing.T) {
	db := testutil.NewDB(t)
	svc := services.NewListingService(db)
	now := time.Now().UTC()

	active := createCar(t, db, "1111AAA", "Seat", "Ibiza", 2019, 40000, true, now)
	inactive := createCar(t, db, "2222BBB", "Audi", "A3", 2021, 20000, false, now)

	got, err := svc.Get(active.ID)
	require.NoError(t, err)
	assert.Equal(t, active.ID, got.ID)

	_, err = svc.Get(inactive.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
