package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/motorplaza/motorplaza-backend/internal/config"
	"github.com/motorplaza/motorplaza-backend/internal/models"
	"github.com/motorplaza/motorplaza-backend/internal/payment"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrGatewayNotConfigured = errors.New("payment gateway is not configured")
	ErrInvalidPrice         = errors.New("listing does not have a valid price")
)

// CheckoutService asks the payment gateway for a session on behalf of an
// authenticated buyer. Gateway failures are surfaced as-is, never retried.
type CheckoutService struct {
	db      *gorm.DB
	cfg     *config.Config
	gateway payment.Gateway
}

func NewCheckoutService(db *gorm.DB, cfg *config.Config, gateway payment.Gateway) *CheckoutService {
	return &CheckoutService{db: db, cfg: cfg, gateway: gateway}
}

// CreateSession validates the listing, creates a gateway session and
// returns its opaque identifier.
func (s *CheckoutService) CreateSession(ctx context.Context, carID uuid.UUID, user *models.User) (string, error) {
	if !s.cfg.StripeConfigured() {
		return "", ErrGatewayNotConfigured
	}

	var car models.Car
	if err := s.db.Where("is_active = ?", true).First(&car, "id = ?", carID).Error; err != nil {
		return "", err
	}
	if car.Price <= 0 {
		return "", ErrInvalidPrice
	}

	amountCents := int64(math.Round(car.Price * 100))
	metadata := map[string]string{
		"car_id":  car.ID.String(),
		"user_id": user.ID.String(),
	}

	sessionID, err := s.gateway.CreateSession(ctx, &payment.SessionParams{
		Currency:      s.cfg.CheckoutCurrency,
		Description:   car.Title(),
		UnitAmount:    amountCents,
		Quantity:      1,
		SuccessURL:    s.cfg.StripeSuccessURL,
		CancelURL:     s.cfg.StripeCancelURL,
		CustomerEmail: user.Email,
		Metadata:      metadata,
	})
	if err != nil {
		return "", err
	}

	s.recordAttempt(&car, user, sessionID, amountCents, metadata)
	return sessionID, nil
}

// recordAttempt writes the audit row; a failure here never fails checkout.
func (s *CheckoutService) recordAttempt(car *models.Car, user *models.User, sessionID string, amountCents int64, metadata map[string]string) {
	raw, _ := json.Marshal(metadata)
	attempt := models.CheckoutAttempt{
		CarID:       car.ID,
		UserID:      user.ID,
		SessionID:   sessionID,
		AmountCents: amountCents,
		Currency:    s.cfg.CheckoutCurrency,
		Metadata:    datatypes.JSON(raw),
	}
	if err := s.db.Create(&attempt).Error; err != nil {
		slog.Error("failed to record checkout attempt", "car_id", car.ID, "error", err)
	}
}
