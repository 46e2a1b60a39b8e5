package handlers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/motorplaza/motorplaza-backend/internal/dto"
	"github.com/motorplaza/motorplaza-backend/internal/middleware"
	"github.com/motorplaza/motorplaza-backend/internal/models"
	"github.com/motorplaza/motorplaza-backend/internal/services"
	"gorm.io/gorm"
)

const maxPhotoSize = 10 * 1024 * 1024

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// AdminCarHandler is the store-mutation surface behind the admin routes.
type AdminCarHandler struct {
	carService   *services.CarService
	photoService *services.PhotoService
}

func NewAdminCarHandler(carService *services.CarService, photoService *services.PhotoService) *AdminCarHandler {
	return &AdminCarHandler{carService: carService, photoService: photoService}
}

// CreateCar handles POST /admin/cars.
func (h *AdminCarHandler) CreateCar(c *fiber.Ctx) error {
	var req dto.CreateCarRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing or malformed listing fields",
		})
	}

	car := carFromRequest(&req)
	if userID, err := middleware.CurrentUserID(c); err == nil {
		car.CreatedByID = &userID
	}

	if err := h.carService.Create(car); err != nil {
		return h.mapWriteError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"car": car})
}

// UpdateCar handles PUT /admin/cars/:id with a full listing payload.
func (h *AdminCarHandler) UpdateCar(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid listing ID",
		})
	}

	var req dto.CreateCarRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing or malformed listing fields",
		})
	}

	car, err := h.carService.Find(id)
	if err != nil {
		return h.mapWriteError(c, err)
	}

	updated := carFromRequest(&req)
	updated.ID = car.ID
	updated.CreatedAt = car.CreatedAt
	updated.CreatedByID = car.CreatedByID

	if err := h.carService.Update(updated); err != nil {
		return h.mapWriteError(c, err)
	}
	return c.JSON(fiber.Map{"car": updated})
}

// SetActive handles PATCH /admin/cars/:id/active.
func (h *AdminCarHandler) SetActive(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid listing ID",
		})
	}

	var req dto.SetActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.carService.SetActive(id, req.IsActive); err != nil {
		return h.mapWriteError(c, err)
	}
	return c.JSON(fiber.Map{"id": id, "is_active": req.IsActive})
}

// DeleteCar handles DELETE /admin/cars/:id. Photos go with the car.
func (h *AdminCarHandler) DeleteCar(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid listing ID",
		})
	}

	if err := h.carService.Delete(id); err != nil {
		return h.mapWriteError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AttachPhoto handles POST /admin/cars/:id/photos (multipart form with an
// image file and an optional position field).
func (h *AdminCarHandler) AttachPhoto(c *fiber.Ctx) error {
	carID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid listing ID",
		})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Image file is required",
		})
	}
	if file.Size > maxPhotoSize {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Image size must be less than 10MB",
		})
	}
	if !allowedPhotoTypes[file.Header.Get("Content-Type")] {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid image format. Only JPEG, PNG, and WebP are allowed",
		})
	}

	position := 0
	if raw := c.FormValue("position"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			position = parsed
		}
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to read uploaded image",
		})
	}
	defer src.Close()

	ext := filepath.Ext(file.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	filename := fmt.Sprintf("%s_%s%s", carID.String()[:8], uuid.New().String()[:8], ext)

	photo, err := h.photoService.Attach(carID, filename, src, position)
	if err != nil {
		return h.mapWriteError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"photo": photo})
}

// DeletePhoto handles DELETE /admin/photos/:id.
func (h *AdminCarHandler) DeletePhoto(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid photo ID",
		})
	}

	if err := h.photoService.Delete(id); err != nil {
		return h.mapWriteError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminCarHandler) mapWriteError(c *fiber.Ctx, err error) error {
	if v, ok := models.AsValidation(err); ok {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   true,
			"message": "Validation failed",
			"fields":  v.Fields,
		})
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Not found",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Write failed",
	})
}

func carFromRequest(req *dto.CreateCarRequest) *models.Car {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return &models.Car{
		LicensePlate: req.LicensePlate,
		Brand:        req.Brand,
		ModelName:    req.ModelName,
		Kilometers:   req.Kilometers,
		Year:         req.Year,
		Price:        req.Price,
		Description:  req.Description,
		IsActive:     active,
	}
}
