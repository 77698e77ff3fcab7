package notification

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrQueueFull = errors.New("notification queue full")
	ErrClosed    = errors.New("notification dispatcher closed")
	ErrNoAddress = errors.New("notification has no recipient")
)

// Dispatcher queues messages on a buffered channel drained by one worker.
type Dispatcher struct {
	sender  Sender
	logger  zerolog.Logger
	queue   chan Message
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(sender Sender, logger zerolog.Logger, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}

	d := &Dispatcher{
		sender:  sender,
		logger:  logger.With().Str("component", "notification").Logger(),
		queue:   make(chan Message, size),
		timeout: 30 * time.Second,
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		if err := d.sender.Send(ctx, msg); err != nil {
			d.logger.Error().
				Err(err).
				Str("appointment_id", msg.AppointmentID).
				Str("subject", msg.Subject).
				Msg("notification delivery failed")
		}
		cancel()
	}
}

// Notify never blocks: a full queue is reported as ErrQueueFull.
func (d *Dispatcher) Notify(_ context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoAddress
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrClosed
	}

	select {
	case d.queue <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting messages and waits until queued ones are sent.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}

var _ Notifier = (*Dispatcher)(nil)
