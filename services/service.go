// Package services holds the registry of long-running daemon services and
// the helpers they share.
package services

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/basement-tech/Monitoring-zimKnives/config"
	"github.com/basement-tech/Monitoring-zimKnives/logger"
)

// Service interface
type Service interface {
	ID() string
	// Run blocks until ctx is cancelled or the service fails.
	Run(ctx context.Context) error
}

// ServiceInit is a service that needs configuration before running.
type ServiceInit interface {
	Service
	Init(cfg *config.Config) error
}

var (
	mu         sync.Mutex
	serviceMap = map[string]Service{}
)

// Register makes a service available to Launch.
func Register(service Service) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := serviceMap[service.ID()]; exists {
		panic("duplicate service registered: " + service.ID())
	}
	serviceMap[service.ID()] = service
}

func Lookup(id string) (Service, bool) {
	mu.Lock()
	defer mu.Unlock()
	s, ok := serviceMap[id]
	return s, ok
}

// IDs of registered services, sorted.
func IDs() []string {
	mu.Lock()
	defer mu.Unlock()
	ids := make([]string, 0, len(serviceMap))
	for id := range serviceMap {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Launch initializes and runs the named services until ctx is cancelled.
// The first service failure cancels the rest and is returned.
func Launch(ctx context.Context, cfg *config.Config, ids []string) error {
	var enabled []Service
	for _, id := range ids {
		service, ok := Lookup(id)
		if !ok {
			return errors.Errorf("service %s does not exist", id)
		}
		enabled = append(enabled, service)
	}

	for _, service := range enabled {
		logger.Infof("Starting %s", service.ID())
		if service, ok := service.(ServiceInit); ok {
			if err := service.Init(cfg); err != nil {
				return errors.Wrapf(err, "init service %s", service.ID())
			}
			logger.Infof("Initialized %s", service.ID())
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errs := make(chan error, len(enabled))
	var wg sync.WaitGroup
	for _, service := range enabled {
		wg.Add(1)
		go func(s Service) {
			defer wg.Done()
			if err := s.Run(ctx); err != nil {
				errs <- errors.Wrapf(err, "service %s", s.ID())
				cancel()
			}
		}(service)
	}
	wg.Wait()
	close(errs)
	return <-errs
}
