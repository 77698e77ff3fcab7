package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/medical-scheduler/internal/models"
)

const (
	ActionAppointmentCreated = "appointment_created"
	ActionAppointmentUpdated = "appointment_updated"
	ActionAppointmentDeleted = "appointment_deleted"
	ActionDoctorCreated      = "doctor_created"
	ActionDoctorUpdated      = "doctor_updated"
	ActionDoctorDeleted      = "doctor_deleted"
	ActionDoctorPhoto        = "doctor_photo_updated"
	ActionUserRegistered     = "user_registered"
	ActionProfileUpdated     = "profile_updated"

	EntityAppointment = "appointment"
	EntityDoctor      = "doctor"
	EntityUser        = "user"

	DefaultQueueSize = 100
)

type Event struct {
	ActorID  string
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

// Recorder accepts audit events without blocking the caller.
type Recorder interface {
	Dispatch(ev Event)
}

type Dispatcher struct {
	store  Store
	logger zerolog.Logger
	queue  chan Event

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(store Store, logger zerolog.Logger, size int) *Dispatcher {
	if size <= 0 {
		size = DefaultQueueSize
	}

	d := &Dispatcher{
		store:  store,
		logger: logger.With().Str("component", "audit").Logger(),
		queue:  make(chan Event, size),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.store.Save(ctx, toLog(ev)); err != nil {
			d.logger.Error().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
		cancel()
	}
}

// Dispatch drops the event when the queue is full; auditing never
// fails a request.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.logger.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits for queued ones to be written.
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

func toLog(ev Event) *models.AuditLog {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	log := &models.AuditLog{
		Action:   ev.Action,
		Entity:   ev.Entity,
		Metadata: metaJSON,
	}
	if ev.ActorID != "" {
		id := ev.ActorID
		log.ActorID = &id
	}
	if ev.EntityID != "" {
		id := ev.EntityID
		log.EntityID = &id
	}
	return log
}
