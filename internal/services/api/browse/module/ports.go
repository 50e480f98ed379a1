package module

import (
	"context"

	"marketbrowse/internal/services/api/browse/domain"
)

// Ports exposes the browse service and its shutdown hook to main
type Ports struct {
	Browse domain.ServicePort
	Drain  func(ctx context.Context) error
}

// Ports returns the module ports
func (m *Module) Ports() any { return Ports{Browse: m.svc, Drain: m.svc.Drain} }
