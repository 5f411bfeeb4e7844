package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/anthdm/hollywood/actor"

	"github.com/ZanzyTHEbar/firedragon-ledger/interfaces"
	"github.com/ZanzyTHEbar/firedragon-ledger/internal"
)

const (
	dispatcherKind = "event_dispatcher"

	// publishTimeout bounds a single delivery to the sink
	publishTimeout = 5 * time.Second
)

// publishMsg carries one event to the dispatcher actor
type publishMsg struct {
	event *interfaces.Event
}

// eventActor delivers events to the sink one at a time, in the order they
// were sent. Its state is only touched from its own mailbox.
type eventActor struct {
	BaseActor
	sink interfaces.EventPublisher

	status     ServiceStatus
	lastActive time.Time
	handled    int
	errorCount int
	lastError  error
}

// Receive implements the actor.Receiver interface
func (a *eventActor) Receive(c *actor.Context) {
	switch msg := c.Message().(type) {
	case actor.Started:
		a.status = ServiceStatusRunning
		a.logger.Debug(internal.ComponentService, "%s started", a.name)

	case actor.Stopped:
		a.status = ServiceStatusStopped
		a.logger.Debug(internal.ComponentService, "%s stopped after %d events (%d failed)", a.name, a.handled, a.errorCount)

	case publishMsg:
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		err := a.sink.Publish(ctx, msg.event)
		cancel()

		a.handled++
		a.lastActive = time.Now()
		if err != nil {
			a.errorCount++
			a.lastError = err
			a.logger.Warn(internal.ComponentService, "Failed to deliver %s event %s: %v", msg.event.Type, msg.event.ID, err)
		}

	case StatusRequestMsg:
		c.Respond(StatusResponseMsg{
			Status:     a.status,
			LastActive: a.lastActive,
			Handled:    a.handled,
			ErrorCount: a.errorCount,
			LastError:  a.lastError,
		})
	}
}

// EventDispatcher is an EventPublisher that hands events to an actor and
// returns immediately. The actor forwards them to the sink in order.
type EventDispatcher struct {
	engine *actor.Engine
	pid    *actor.PID
	logger *internal.Logger
	closed atomic.Bool
}

// NewEventDispatcher starts the actor engine and the dispatcher actor
func NewEventDispatcher(sink interfaces.EventPublisher, logger *internal.Logger) (*EventDispatcher, error) {
	engine, err := actor.NewEngine(actor.NewEngineConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create actor engine: %w", err)
	}

	receiver := &eventActor{
		BaseActor: NewBaseActor(dispatcherKind, logger),
		sink:      sink,
		status:    ServiceStatusStopped,
	}
	pid := engine.SpawnFunc(receiver.Receive, dispatcherKind, actor.WithID(internal.GenerateUUID()))

	logger.Debug(internal.ComponentService, "Registered actor service %s", pid)
	return &EventDispatcher{engine: engine, pid: pid, logger: logger}, nil
}

// Publish queues event for delivery. Delivery failures are logged by the actor.
// It is safe for concurrent use, also with Close. Events racing a Close may be dropped.
func (d *EventDispatcher) Publish(_ context.Context, event *interfaces.Event) error {
	if d.closed.Load() {
		return fmt.Errorf("event dispatcher is closed")
	}
	d.engine.Send(d.pid, publishMsg{event: event})
	return nil
}

// Status asks the actor for its delivery statistics
func (d *EventDispatcher) Status(timeout time.Duration) (StatusResponseMsg, error) {
	result, err := d.engine.Request(d.pid, StatusRequestMsg{}, timeout).Result()
	if err != nil {
		return StatusResponseMsg{}, fmt.Errorf("failed to query %s: %w", dispatcherKind, err)
	}
	status, ok := result.(StatusResponseMsg)
	if !ok {
		return StatusResponseMsg{}, fmt.Errorf("unexpected status reply %T", result)
	}
	return status, nil
}

// Close stops the actor once every queued event has been delivered
func (d *EventDispatcher) Close() error {
	if !d.closed.CompareAndSwap(false, true) {
		return nil
	}

	if status, err := d.Status(publishTimeout); err == nil {
		d.logger.Debug(internal.ComponentService, "Draining %s: %d delivered, %d failed", dispatcherKind, status.Handled, status.ErrorCount)
	}
	<-d.engine.Poison(d.pid).Done()
	return nil
}
