package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/motorplaza/motorplaza-backend/internal/config"
	"github.com/motorplaza/motorplaza-backend/internal/models"
	"github.com/motorplaza/motorplaza-backend/internal/payment"
	"github.com/motorplaza/motorplaza-backend/internal/services"
	"github.com/motorplaza/motorplaza-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeGateway struct {
	calls  int
	params *payment.SessionParams
	id     string
	err    error
}

func (f *fakeGateway) CreateSession(ctx context.Context, params *payment.SessionParams) (string, error) {
	f.calls++
	f.params = params
	if f.err != nil {
		return "", f.err
	}
	return f.id, nil
}

func checkoutConfig() *config.Config {
	return &config.Config{
		StripeSecretKey:      "sk_test_123",
		StripePublishableKey: "pk_test_123",
		StripeSuccessURL:     "http://localhost/success",
		StripeCancelURL:      "http://localhost/cancel",
		CheckoutCurrency:     "eur",
	}
}

func buyer(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := models.User{Email: "buyer@example.com", Password: "x", Role: models.RoleRegistered}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestCheckoutCreatesSession(t *testing.T) {
	db := testutil.NewDB(t)
	gateway := &fakeGateway{id: "cs_test_ok"}
	svc := services.NewCheckoutService(db, checkoutConfig(), gateway)

	car := createCar(t, db, "1234ABC", "Seat", "Ibiza", 2019, 40000, true, time.Now().UTC())
	car.Price = 12500.50
	require.NoError(t, db.Save(&car).Error)
	user := buyer(t, db)

	sessionID, err := svc.CreateSession(context.Background(), car.ID, user)
	require.NoError(t, err)
	assert.Equal(t, "cs_test_ok", sessionID)

	require.Equal(t, 1, gateway.calls)
	assert.Equal(t, "eur", gateway.params.Currency)
	assert.Equal(t, "Seat Ibiza", gateway.params.Description)
	assert.EqualValues(t, 1250050, gateway.params.UnitAmount)
	assert.Equal(t, "buyer@example.com", gateway.params.CustomerEmail)
	assert.Equal(t, car.ID.String(), gateway.params.Metadata["car_id"])
	assert.Equal(t, user.ID.String(), gateway.params.Metadata["user_id"])

	// Audit row lands alongside the session.
	var attempt models.CheckoutAttempt
	require.NoError(t, db.First(&attempt, "car_id = ?", car.ID).Error)
	assert.Equal(t, "cs_test_ok", attempt.SessionID)
	assert.EqualValues(t, 1250050, attempt.AmountCents)
}

func TestCheckoutNotConfigured(t *testing.T) {
	db := testutil.NewDB(t)
	gateway := &fakeGateway{id: "cs_never"}
	svc := services.NewCheckoutService(db, &config.Config{}, gateway)

	_, err := svc.CreateSession(context.Background(), uuid.New(), buyer(t, db))
	assert.ErrorIs(t, err, services.ErrGatewayNotConfigured)
	assert.Zero(t, gateway.calls)
}

func TestCheckoutRejectsInactiveCar(t *testing.T) {
	db := testutil.NewDB(t)
	gateway := &fakeGateway{id: "cs_never"}
	svc := services.NewCheckoutService(db, checkoutConfig(), gateway)

	car := createCar(t, db, "1234ABC", "Seat", "Ibiza", 2019, 40000, false, time.Now().UTC())

	_, err := svc.CreateSession(context.Background(), car.ID, buyer(t, db))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Zero(t, gateway.calls)
}

func TestCheckoutRejectsZeroPrice(t *testing.T) {
	db := testutil.NewDB(t)
	gateway := &fakeGateway{id: "cs_never"}
	svc := services.NewCheckoutService(db, checkoutConfig(), gateway)

	car := models.Car{
		LicensePlate: "1234ABC",
		Brand:        "Seat",
		ModelName:    "Ibiza",
		Kilometers:   40000,
		Year:         2019,
		Price:        0,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&car).Error)

	_, err := svc.CreateSession(context.Background(), car.ID, buyer(t, db))
	assert.ErrorIs(t, err, services.ErrInvalidPrice)
	// The gateway must never see a free listing.
	assert.Zero(t, gateway.calls)
}

func TestCheckoutPropagatesGatewayError(t *testing.T) {
	db := testutil.NewDB(t)
	gwErr := &payment.GatewayError{StatusCode: 402, Message: "Your card was declined."}
	gateway := &fakeGateway{err: gwErr}
	svc := services.NewCheckoutService(db, checkoutConfig(), gateway)

	car := createCar(t, db, "1234ABC", "Seat", "Ibiza", 2019, 40000, true, time.Now().UTC())
	car.Price = 9000
	require.NoError(t, db.Save(&car).Error)

	_, err := svc.CreateSession(context.Background(), car.ID, buyer(t, db))
	var got *payment.GatewayError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, 402, got.StatusCode)

	// No audit row for a failed session.
	var count int64
	require.NoError(t, db.Model(&models.CheckoutAttempt{}).Count(&count).Error)
	assert.Zero(t, count)
}
