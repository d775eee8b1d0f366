package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"payment-gateway/internal/config"
	"payment-gateway/internal/metrics"
	"payment-gateway/internal/models"
	"payment-gateway/internal/repository"
)

// ErrSettlerStopped is returned by Submit after Shutdown has begun.
var ErrSettlerStopped = errors.New("settler stopped")

const retryBackoff = 50 * time.Millisecond

// Simulator drives payments from processing to a terminal status on a
// bounded worker pool. Each payment is settled exactly once; the settler
// is the only writer of payments and orders after creation.
type Simulator struct {
	cfg      config.SettlementConfig
	payments repository.PaymentStore
	orders   repository.OrderStore
	logger   *zap.Logger

	jobs chan settlementJob
	wg   sync.WaitGroup

	mu      sync.RWMutex
	stopped bool

	// hardStop short-circuits pending delays when a drain deadline is
	// reached, so in-flight settlements still reach a terminal write.
	hardStop chan struct{}
}

type settlementJob struct {
	paymentID string
	method    models.PaymentMethod
	done      chan models.PaymentStatus
}

func NewSimulator(cfg config.SettlementConfig, payments repository.PaymentStore, orders repository.OrderStore, logger *zap.Logger) *Simulator {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1
	}
	if cfg.WriteRetries <= 0 {
		cfg.WriteRetries = 1
	}

	return &Simulator{
		cfg:      cfg,
		payments: payments,
		orders:   orders,
		logger:   logger,
		jobs:     make(chan settlementJob, cfg.QueueSize),
		hardStop: make(chan struct{}),
	}
}

// Start launches the worker pool.
func (s *Simulator) Start() {
	for i := 0; i < s.cfg.Workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
}

// Submit enqueues a payment for settlement. The returned channel receives
// the terminal status once; it is primarily for tests and callers that
// want completion signaling. Submit blocks when the queue is full, which
// is the backpressure point under load.
func (s *Simulator) Submit(payment *models.Payment) (<-chan models.PaymentStatus, error) {
	// The read lock keeps Shutdown from closing the queue while a send
	// is in flight; workers keep draining, so a full queue cannot wedge
	// the drain.
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.stopped {
		return nil, ErrSettlerStopped
	}
	job := settlementJob{
		paymentID: payment.ID,
		method:    payment.Method,
		done:      make(chan models.PaymentStatus, 1),
	}
	s.jobs <- job
	return job.done, nil
}

// Shutdown stops intake and drains queued and in-flight settlements.
// When ctx expires before the drain completes, pending delays are cut
// short and the terminal writes happen immediately.
func (s *Simulator) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.stopped = true
	close(s.jobs)
	s.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		close(s.hardStop)
		<-drained
		return ctx.Err()
	}
}

func (s *Simulator) worker() {
	defer s.wg.Done()
	for job := range s.jobs {
		s.settle(job)
	}
}

func (s *Simulator) settle(job settlementJob) {
	delay, success := s.resolveOutcome(job.method)

	errCode, errDesc := "", ""
	status := models.PaymentStatusSuccess
	if !success {
		status = models.PaymentStatusFailed
		errCode = models.CodePaymentFailed
		errDesc = "Payment processing failed"
	}

	// A settlement that would outlive the cap is force-failed at the cap
	// instead of leaving the payment in processing forever.
	if s.cfg.MaxSettlementTime > 0 && delay > s.cfg.MaxSettlementTime {
		delay = s.cfg.MaxSettlementTime
		status = models.PaymentStatusFailed
		errCode = models.CodeSettlementTimeout
		errDesc = "Settlement did not complete in time"
	}

	timer := time.NewTimer(delay)
	select {
	case <-timer.C:
	case <-s.hardStop:
		timer.Stop()
	}

	final := s.finalize(job.paymentID, status, errCode, errDesc)
	metrics.SettlementsTotal.WithLabelValues(string(job.method), string(final)).Inc()
	job.done <- final
}

func (s *Simulator) resolveOutcome(method models.PaymentMethod) (time.Duration, bool) {
	if s.cfg.TestMode {
		return s.cfg.FixedDelay, s.cfg.FixedOutcome
	}

	spread := s.cfg.MaxDelay - s.cfg.MinDelay
	delay := s.cfg.MinDelay
	if spread > 0 {
		delay += time.Duration(rand.Int63n(int64(spread)))
	}

	rate, ok := s.cfg.SuccessRate[method]
	if !ok {
		rate = 0.95
	}
	return delay, rand.Float64() < rate
}

// finalize performs the terminal read-modify-write, retrying a bounded
// number of times on write failure or version conflict. Returns the
// status actually recorded.
func (s *Simulator) finalize(paymentID string, status models.PaymentStatus, errCode, errDesc string) models.PaymentStatus {
	ctx := context.Background()

	for attempt := 0; attempt < s.cfg.WriteRetries; attempt++ {
		payment, err := s.payments.GetByID(ctx, paymentID)
		if err != nil {
			s.logger.Error("settlement: failed to load payment",
				zap.String("payment_id", paymentID), zap.Error(err))
			time.Sleep(retryBackoff)
			continue
		}

		// Another writer already settled it; terminal states never change.
		if payment.Status.Terminal() {
			return payment.Status
		}

		payment.Status = status
		payment.ErrorCode = errCode
		payment.ErrorDescription = errDesc
		payment.UpdatedAt = time.Now()

		err = s.payments.UpdateVersioned(ctx, payment)
		if errors.Is(err, repository.ErrVersionConflict) {
			// Reload and reapply against the newer version.
			continue
		}
		if err != nil {
			s.logger.Error("settlement: failed to write payment",
				zap.String("payment_id", paymentID), zap.Error(err))
			time.Sleep(retryBackoff)
			continue
		}

		s.logger.Info("payment settled",
			zap.String("payment_id", paymentID),
			zap.String("status", string(status)))

		if status == models.PaymentStatusSuccess {
			s.markOrderPaid(ctx, payment.OrderID)
		}
		return status
	}

	// Abandoned after bounded retries. The payment stays in processing,
	// which monitoring picks up as a stuck settlement.
	s.logger.Error("settlement: giving up after retries",
		zap.String("payment_id", paymentID),
		zap.Int("attempts", s.cfg.WriteRetries))
	return models.PaymentStatusProcessing
}

// markOrderPaid advances the parent order created -> paid after a
// successful settlement.
func (s *Simulator) markOrderPaid(ctx context.Context, orderID string) {
	for attempt := 0; attempt < s.cfg.WriteRetries; attempt++ {
		order, err := s.orders.GetByID(ctx, orderID)
		if err != nil {
			s.logger.Error("settlement: failed to load order",
				zap.String("order_id", orderID), zap.Error(err))
			return
		}
		if order.Status == models.OrderStatusPaid {
			return
		}

		order.Status = models.OrderStatusPaid
		order.UpdatedAt = time.Now()

		err = s.orders.UpdateVersioned(ctx, order)
		if errors.Is(err, repository.ErrVersionConflict) {
			continue
		}
		if err != nil {
			s.logger.Error("settlement: failed to mark order paid",
				zap.String("order_id", orderID), zap.Error(err))
		}
		return
	}
}
