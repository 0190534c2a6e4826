package service

import (
	"context"
	"errors"
	"fmt"
)

// Service is a background part of the program
// which runs next to the render loop.
type Service interface {
	Run() error
	Shutdown(ctx context.Context) error
}

// Group is a container for managing a bunch of services.
type Group struct {
	list    []Service
	started []Service
}

func (g *Group) Add(services ...Service) { g.list = append(g.list, services...) }

// Start starts each service in the group,
// the services started before a failed one are kept running.
func (g *Group) Start() error {
	for _, s := range g.list {
		if err := s.Run(); err != nil {
			return fmt.Errorf("failed to start [%s]: %w", s, err)
		}
		g.started = append(g.started, s)
	}
	return nil
}

// Shutdown terminates the started services in the reverse order.
func (g *Group) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(g.started) - 1; i >= 0; i-- {
		s := g.started[i]
		if err := s.Shutdown(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errs = append(errs, fmt.Errorf("failed to stop [%s]: %w", s, err))
		}
	}
	g.started = nil
	return errors.Join(errs...)
}
