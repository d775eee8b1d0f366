package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payment-gateway/internal/config"
	"payment-gateway/internal/models"
	"payment-gateway/internal/repository"
)

const settleTimeout = 5 * time.Second

func testSettlementConfig() config.SettlementConfig {
	return config.SettlementConfig{
		TestMode:          true,
		FixedDelay:        0,
		FixedOutcome:      true,
		Workers:           2,
		QueueSize:         16,
		MaxSettlementTime: 2 * time.Second,
		WriteRetries:      3,
	}
}

func newProcessingPayment(t *testing.T, store *repository.Store, method models.PaymentMethod) *models.Payment {
	t.Helper()
	ctx := context.Background()

	order := &models.Order{ID: "order_settle", MerchantID: "m-1", Amount: 500, Currency: "INR", Status: models.OrderStatusCreated}
	if _, err := store.Orders.GetByID(ctx, order.ID); errors.Is(err, repository.ErrNotFound) {
		require.NoError(t, store.Orders.Create(ctx, order))
	}

	payment := &models.Payment{
		ID:         "pay_" + string(method) + "_1",
		OrderID:    order.ID,
		MerchantID: "m-1",
		Amount:     500,
		Currency:   "INR",
		Method:     method,
		Status:     models.PaymentStatusProcessing,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	require.NoError(t, store.Payments.Create(ctx, payment))
	return payment
}

func awaitStatus(t *testing.T, done <-chan models.PaymentStatus) models.PaymentStatus {
	t.Helper()
	select {
	case status := <-done:
		return status
	case <-time.After(settleTimeout):
		t.Fatal("settlement did not reach a terminal status in time")
		return ""
	}
}

func TestSettlementDeterministicSuccess(t *testing.T) {
	store := repository.NewMemoryStore()
	sim := NewSimulator(testSettlementConfig(), store.Payments, store.Orders, testLogger())
	sim.Start()
	defer sim.Shutdown(context.Background())

	payment := newProcessingPayment(t, store, models.PaymentMethodUPI)
	done, err := sim.Submit(payment)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusSuccess, awaitStatus(t, done))

	stored, err := store.Payments.GetByID(context.Background(), payment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusSuccess, stored.Status)
	assert.Empty(t, stored.ErrorCode)
	assert.True(t, stored.UpdatedAt.After(payment.CreatedAt) || stored.UpdatedAt.Equal(payment.CreatedAt))

	// Successful settlement advances the parent order.
	order, err := store.Orders.GetByID(context.Background(), payment.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, order.Status)
}

func TestSettlementDeterministicFailure(t *testing.T) {
	store := repository.NewMemoryStore()
	cfg := testSettlementConfig()
	cfg.FixedOutcome = false
	sim := NewSimulator(cfg, store.Payments, store.Orders, testLogger())
	sim.Start()
	defer sim.Shutdown(context.Background())

	payment := newProcessingPayment(t, store, models.PaymentMethodCard)
	done, err := sim.Submit(payment)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusFailed, awaitStatus(t, done))

	stored, err := store.Payments.GetByID(context.Background(), payment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, stored.Status)
	assert.Equal(t, models.CodePaymentFailed, stored.ErrorCode)
	assert.Equal(t, "Payment processing failed", stored.ErrorDescription)

	// A failed payment must not advance the order.
	order, err := store.Orders.GetByID(context.Background(), payment.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCreated, order.Status)
}

func TestSettlementTimeoutForceFails(t *testing.T) {
	store := repository.NewMemoryStore()
	cfg := testSettlementConfig()
	cfg.FixedDelay = time.Minute
	cfg.MaxSettlementTime = 20 * time.Millisecond
	sim := NewSimulator(cfg, store.Payments, store.Orders, testLogger())
	sim.Start()
	defer sim.Shutdown(context.Background())

	payment := newProcessingPayment(t, store, models.PaymentMethodUPI)
	done, err := sim.Submit(payment)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusFailed, awaitStatus(t, done))

	stored, err := store.Payments.GetByID(context.Background(), payment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CodeSettlementTimeout, stored.ErrorCode)
}

func TestSettlementRespectsTerminalState(t *testing.T) {
	store := repository.NewMemoryStore()
	cfg := testSettlementConfig()
	cfg.FixedOutcome = false
	sim := NewSimulator(cfg, store.Payments, store.Orders, testLogger())
	sim.Start()
	defer sim.Shutdown(context.Background())

	payment := newProcessingPayment(t, store, models.PaymentMethodUPI)

	// Another writer settles the payment first.
	settled, err := store.Payments.GetByID(context.Background(), payment.ID)
	require.NoError(t, err)
	settled.Status = models.PaymentStatusSuccess
	require.NoError(t, store.Payments.UpdateVersioned(context.Background(), settled))

	done, err := sim.Submit(payment)
	require.NoError(t, err)

	// The simulator must observe the terminal state and leave it alone.
	assert.Equal(t, models.PaymentStatusSuccess, awaitStatus(t, done))

	stored, err := store.Payments.GetByID(context.Background(), payment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusSuccess, stored.Status)
	assert.Empty(t, stored.ErrorCode)
}

// failingPayments wraps a PaymentStore and fails every versioned update.
type failingPayments struct {
	repository.PaymentStore
}

func (f *failingPayments) UpdateVersioned(context.Context, *models.Payment) error {
	return errors.New("storage write failed")
}

func TestSettlementAbandonsAfterBoundedRetries(t *testing.T) {
	store := repository.NewMemoryStore()
	cfg := testSettlementConfig()
	sim := NewSimulator(cfg, &failingPayments{store.Payments}, store.Orders, testLogger())
	sim.Start()
	defer sim.Shutdown(context.Background())

	payment := newProcessingPayment(t, store, models.PaymentMethodUPI)
	done, err := sim.Submit(payment)
	require.NoError(t, err)

	// After bounded retries the payment is left in processing, which is
	// the externally observable stuck state.
	assert.Equal(t, models.PaymentStatusProcessing, awaitStatus(t, done))

	stored, err := store.Payments.GetByID(context.Background(), payment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusProcessing, stored.Status)
}

func TestSettlementShutdownDrains(t *testing.T) {
	store := repository.NewMemoryStore()
	cfg := testSettlementConfig()
	cfg.FixedDelay = time.Minute
	cfg.MaxSettlementTime = 2 * time.Minute
	cfg.Workers = 4
	sim := NewSimulator(cfg, store.Payments, store.Orders, testLogger())
	sim.Start()

	var channels []<-chan models.PaymentStatus
	ctx := context.Background()
	require.NoError(t, store.Orders.Create(ctx, &models.Order{ID: "order_drain", MerchantID: "m-1", Status: models.OrderStatusCreated}))
	for i := 0; i < 4; i++ {
		payment := &models.Payment{
			ID:         "pay_drain_" + string(rune('a'+i)),
			OrderID:    "order_drain",
			MerchantID: "m-1",
			Method:     models.PaymentMethodUPI,
			Status:     models.PaymentStatusProcessing,
		}
		require.NoError(t, store.Payments.Create(ctx, payment))
		done, err := sim.Submit(payment)
		require.NoError(t, err)
		channels = append(channels, done)
	}

	// The drain deadline is far shorter than the pending delays; the
	// shutdown must cut the delays and still write terminal statuses.
	shutdownCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	err := sim.Shutdown(shutdownCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	for _, done := range channels {
		status := awaitStatus(t, done)
		assert.True(t, status.Terminal(), "payment left in %s after drain", status)
	}

	// Submissions after shutdown are refused.
	_, err = sim.Submit(&models.Payment{ID: "pay_late"})
	assert.ErrorIs(t, err, ErrSettlerStopped)
}

func TestSettlementRealisticModeTerminates(t *testing.T) {
	store := repository.NewMemoryStore()
	cfg := config.SettlementConfig{
		TestMode: false,
		MinDelay: time.Millisecond,
		MaxDelay: 5 * time.Millisecond,
		SuccessRate: map[models.PaymentMethod]float64{
			models.PaymentMethodUPI: 0.5,
		},
		Workers:           2,
		QueueSize:         8,
		MaxSettlementTime: time.Second,
		WriteRetries:      3,
	}
	sim := NewSimulator(cfg, store.Payments, store.Orders, testLogger())
	sim.Start()
	defer sim.Shutdown(context.Background())

	payment := newProcessingPayment(t, store, models.PaymentMethodUPI)
	done, err := sim.Submit(payment)
	require.NoError(t, err)

	status := awaitStatus(t, done)
	assert.True(t, status.Terminal())
}
