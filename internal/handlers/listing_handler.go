package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/motorplaza/motorplaza-backend/internal/dto"
	"github.com/motorplaza/motorplaza-backend/internal/services"
	"gorm.io/gorm"
)

type ListingHandler struct {
	listingService *services.ListingService
}

func NewListingHandler(listingService *services.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

// Search handles GET / — the public landing page. All filter criteria are
// optional and malformed numeric ones are silently skipped.
func (h *ListingHandler) Search(c *fiber.Ctx) error {
	params := c.Queries()
	filters := services.ParseSearchQuery(params)

	result, err := h.listingService.Search(filters)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to search listings",
		})
	}

	brands, err := h.listingService.Brands()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load brands",
		})
	}
	years, err := h.listingService.Years()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load years",
		})
	}

	return c.JSON(fiber.Map{
		"cars": result.Cars,
		"filters": dto.FilterValues{
			Brand:   params["brand"],
			Model:   params["model"],
			YearMin: params["year_min"],
			YearMax: params["year_max"],
			KmMax:   params["km_max"],
			Query:   params["q"],
		},
		"available_brands": brands,
		"available_years":  years,
		"pagination": dto.Pagination{
			Page:       result.Page,
			PageSize:   result.PageSize,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	})
}

// Detail handles GET /listings/:id for active listings only.
func (h *ListingHandler) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid listing ID",
		})
	}

	car, err := h.listingService.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Listing not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load listing",
		})
	}
	return c.JSON(fiber.Map{"car": car})
}
