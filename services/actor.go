// Package services provides service implementations using the hollywood actor model
package services

import (
	"time"

	"github.com/ZanzyTHEbar/firedragon-ledger/internal"
)

// ServiceStatus is the lifecycle state an actor reports
type ServiceStatus string

const (
	ServiceStatusRunning ServiceStatus = "running"
	ServiceStatusStopped ServiceStatus = "stopped"
)

// BaseActor provides common functionality for all actors
type BaseActor struct {
	logger *internal.Logger
	name   string
}

// NewBaseActor creates a new base actor with the given name and logger
func NewBaseActor(name string, logger *internal.Logger) BaseActor {
	return BaseActor{
		name:   name,
		logger: logger,
	}
}

// StatusRequestMsg is a message requesting the current status of an actor
type StatusRequestMsg struct{}

// StatusResponseMsg is the response to a status request
type StatusResponseMsg struct {
	Status     ServiceStatus
	LastActive time.Time
	Handled    int
	ErrorCount int
	LastError  error
}
