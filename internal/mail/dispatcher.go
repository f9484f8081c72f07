package mail

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"eats-backend/internal/metrics"
)

type verificationSender interface {
	SendVerificationEmail(ctx context.Context, email, code string) bool
}

type verification struct {
	email string
	code  string
}

// Dispatcher delivers verification mail in the background. NotifyVerification
// never blocks: when the queue is full the message is dropped and logged.
type Dispatcher struct {
	sender  verificationSender
	log     *slog.Logger
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan verification
	wg     sync.WaitGroup
}

func NewDispatcher(sender verificationSender, log *slog.Logger, queueSize, workers int) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	if workers < 1 {
		workers = 1
	}
	d := &Dispatcher{
		sender:  sender,
		log:     log,
		timeout: 30 * time.Second,
		queue:   make(chan verification, queueSize),
	}
	for n := workers; n > 0; n-- {
		d.wg.Add(1)
		go d.work()
	}
	return d
}

func (d *Dispatcher) NotifyVerification(email, code string) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn("mail dispatcher closed, dropping verification", "email", email)
		metrics.MailDeliveries.With("result", "dropped").Add(1)
		return
	}
	select {
	case d.queue <- verification{email: email, code: code}:
		metrics.MailQueueDepth.Set(float64(len(d.queue)))
	default:
		d.log.Warn("mail queue full, dropping verification", "email", email)
		metrics.MailDeliveries.With("result", "dropped").Add(1)
	}
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for v := range d.queue {
		metrics.MailQueueDepth.Set(float64(len(d.queue)))
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		if d.sender.SendVerificationEmail(ctx, v.email, v.code) {
			metrics.MailDeliveries.With("result", "sent").Add(1)
		} else {
			d.log.Warn("verification email not delivered", "email", v.email)
			metrics.MailDeliveries.With("result", "failed").Add(1)
		}
		cancel()
	}
}

// Close stops accepting messages and waits for queued ones to be delivered
// or for ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
